package alias

import "github.com/deploymenttheory/go-classicbox/internal/macbinary"

// Target describes the item an alias should point at, gathered by the
// caller from a volume listing. Ancestor ids are ordered innermost first
// and exclude the volume root.
type Target struct {
	VolumeName    string
	VolumeCreated uint32 // Mac timestamp

	Name      string
	ID        uint32
	Created   uint32 // Mac timestamp, 0 if unknown
	IsFile    bool
	IsVolume  bool
	Type      string // 4-byte type code, files only
	Creator   string // 4-byte creator code, files only
	ParentID  uint32
	Parent    string   // name of the immediate parent directory
	Ancestors []uint32 // directory ids up to, but not including, the root

	AbsolutePath string // colon-separated Mac path, e.g. "Boot:Games:Game"
}

// NewFileForTarget builds an alias file pointing at the given target,
// following the Finder's conventions for each target kind: file types
// adrp/fdrp/hdsk, directory-id and path extras, and the alias Finder
// flag. Volume targets get the special parent id 1 and same-volume nlvl
// markers cleared.
func NewFileForTarget(t Target) *File {
	rec := Record{
		Version:         2,
		VolumeSignature: VolumeSignatureHFS,
		VolumeName:      t.VolumeName,
		VolumeCreated:   t.VolumeCreated,
		FileName:        t.Name,
		FileNumber:      t.ID,
		FileCreated:     t.Created,
		NlvlFrom:        1, // assume alias file on the same volume as the target
		NlvlTo:          1,
	}
	f := &File{
		ResourceName: t.Name + " alias",
		FinderFlags:  macbinary.FlagIsAlias,
	}

	switch {
	case t.IsVolume:
		// A Finder alias to a volume also carries a custom icon
		// resource matching the volume; without one the alias still
		// works but shows a generic document icon until first opened.
		rec.Kind = KindFolder
		rec.ParentDirectoryID = 1 // parent of all volumes
		rec.FileCreated = t.VolumeCreated
		rec.NlvlFrom = NlvlDifferentVolume
		rec.NlvlTo = NlvlDifferentVolume
		f.FileType = FileTypeVolumeAlias
		f.FileCreator = CreatorFinder

	case t.IsFile:
		rec.Kind = KindFile
		rec.ParentDirectoryID = t.ParentID
		rec.FileType = t.Type
		rec.FileCreator = t.Creator
		rec.Extras = standardExtras(t)
		if t.Type == "APPL" {
			f.FileType = FileTypeApplicationAlias
			f.FileCreator = t.Creator
		} else {
			f.FileType = t.Type
			f.FileCreator = t.Creator
		}

	default:
		// Special folders carry their own type codes ('fasy' for the
		// System Folder, 'trsh' for the Trash); the generic folder
		// code yields a working alias with a plain folder icon.
		rec.Kind = KindFolder
		rec.ParentDirectoryID = t.ParentID
		rec.Extras = standardExtras(t)
		f.FileType = FileTypeFolderAlias
		f.FileCreator = CreatorFinder
	}

	f.Record = rec
	return f
}

func standardExtras(t Target) []Extra {
	extras := []Extra{StringExtra(TagParentDirectoryName, t.Parent)}
	if len(t.Ancestors) > 0 {
		extras = append(extras, DirectoryIDsExtra(t.Ancestors))
	}
	extras = append(extras, StringExtra(TagAbsolutePath, t.AbsolutePath))
	return extras
}
