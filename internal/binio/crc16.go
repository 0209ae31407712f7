package binio

// CRC-16 with polynomial 0x1021, zero initial value, as used by the
// MacBinary II header checksum (CRC-16/XMODEM).

const crc16Poly = 0x1021

var crc16Table [256]uint16

func init() {
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crc16Poly
			} else {
				crc <<= 1
			}
		}
		crc16Table[i] = crc
	}
}

// CRC16 computes the MacBinary II style checksum of data
func CRC16(data []byte) uint16 {
	return UpdateCRC16(0, data)
}

// UpdateCRC16 folds data into a running checksum
func UpdateCRC16(crc uint16, data []byte) uint16 {
	for _, c := range data {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^c]
	}
	return crc
}
