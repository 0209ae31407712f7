package hfs

import "strings"

// MacOS path helpers. Absolute MacOS paths are colon separated and
// rooted at a volume name, for example "Boot:System Folder:Preferences".
// The semantics differ from path/filepath: a bare volume keeps its
// trailing colon, and relative paths are not supported.

// NormPath returns the normalized form of an absolute MacOS path: no
// trailing colon, unless the path refers to a volume.
//
//	NormPath("Boot:")               == "Boot:"
//	NormPath("Boot:System Folder:") == "Boot:System Folder"
func NormPath(itemPath string) string {
	if strings.HasSuffix(itemPath, ":") && strings.Index(itemPath, ":") != len(itemPath)-1 {
		return itemPath[:len(itemPath)-1]
	}
	return itemPath
}

// DirPath returns the absolute MacOS path of the volume or directory
// containing the given item, or "" if the item is itself a volume.
//
//	DirPath("Boot:")                           == ""
//	DirPath("Boot:System Folder")              == "Boot:"
//	DirPath("Boot:System Folder:Preferences")  == "Boot:System Folder"
func DirPath(itemPath string) string {
	itemPath = NormPath(itemPath)
	if strings.HasSuffix(itemPath, ":") {
		return ""
	}

	parent := itemPath[:strings.LastIndex(itemPath, ":")]
	if !strings.Contains(parent, ":") {
		// Parent is a volume
		return parent + ":"
	}
	return parent
}

// ItemName returns the name of the item the path refers to.
//
//	ItemName("Boot:")                == "Boot"
//	ItemName("Boot:System Folder:")  == "System Folder"
//	ItemName("Boot:SimpleText")      == "SimpleText"
func ItemName(itemPath string) string {
	itemPath = strings.TrimSuffix(itemPath, ":")
	if i := strings.LastIndex(itemPath, ":"); i >= 0 {
		return itemPath[i+1:]
	}
	return itemPath
}

// Join appends a child item name to a directory path.
func Join(dirPath, name string) string {
	if strings.HasSuffix(dirPath, ":") {
		return dirPath + name
	}
	return dirPath + ":" + name
}
