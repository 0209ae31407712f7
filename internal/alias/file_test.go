package alias

import (
	"errors"
	"reflect"
	"testing"

	"github.com/deploymenttheory/go-classicbox/internal/macbinary"
	"github.com/deploymenttheory/go-classicbox/internal/resourcefork"
)

func TestFileForkRoundTrip(t *testing.T) {
	src := &File{
		Record:       *sampleRecord(),
		ResourceName: "app alias",
	}
	encoded, err := src.EncodeFork()
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeFork(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.ResourceName != "app alias" {
		t.Errorf("resource name = %q", decoded.ResourceName)
	}
	if !reflect.DeepEqual(&decoded.Record, sampleRecord()) {
		t.Errorf("record mismatch:\n got %+v", decoded.Record)
	}
}

func TestMissingAliasResource(t *testing.T) {
	fork := &resourcefork.Fork{}
	if err := fork.Add("TEXT", resourcefork.Resource{ID: 128, Data: []byte("hi")}); err != nil {
		t.Fatal(err)
	}
	encoded, err := fork.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeFork(encoded); !errors.Is(err, ErrMissingAliasResource) {
		t.Errorf("fork without alis: got %v, want ErrMissingAliasResource", err)
	}
}

func TestMacBinaryRoundTrip(t *testing.T) {
	src := NewFileForTarget(Target{
		VolumeName:    "Boot",
		VolumeCreated: 3431272487,
		Name:          "app",
		ID:            543,
		IsFile:        true,
		Type:          "APPL",
		Creator:       "AQt7",
		ParentID:      542,
		Parent:        "B",
		Ancestors:     []uint32{542, 541, 484},
		AbsolutePath:  "Boot:AutQuit7:A:B:app",
	})

	encoded, err := src.EncodeMacBinary("app alias")
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeMacBinary(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.FileType != FileTypeApplicationAlias || decoded.FileCreator != "AQt7" {
		t.Errorf("finder metadata = %q/%q", decoded.FileType, decoded.FileCreator)
	}
	if decoded.FinderFlags&macbinary.FlagIsAlias == 0 {
		t.Error("alias Finder flag not set")
	}
	if !reflect.DeepEqual(decoded.Record, src.Record) {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", decoded.Record, src.Record)
	}
}

func TestTargetKinds(t *testing.T) {
	folder := NewFileForTarget(Target{
		VolumeName: "Boot", Name: "Games", ID: 100, ParentID: 2,
		Parent: "Boot", AbsolutePath: "Boot:Games",
	})
	if folder.Record.Kind != KindFolder || folder.FileType != FileTypeFolderAlias || folder.FileCreator != CreatorFinder {
		t.Errorf("folder alias = kind %d, %q/%q", folder.Record.Kind, folder.FileType, folder.FileCreator)
	}

	volume := NewFileForTarget(Target{
		VolumeName: "Boot", VolumeCreated: 42, Name: "Boot", ID: 2, IsVolume: true,
	})
	if volume.FileType != FileTypeVolumeAlias || volume.Record.ParentDirectoryID != 1 {
		t.Errorf("volume alias = %q, parent %d", volume.FileType, volume.Record.ParentDirectoryID)
	}
	if volume.Record.NlvlFrom != NlvlDifferentVolume || volume.Record.FileCreated != 42 {
		t.Errorf("volume alias record = %+v", volume.Record)
	}
	if len(volume.Record.Extras) != 0 {
		t.Errorf("volume alias should carry no extras, got %+v", volume.Record.Extras)
	}

	document := NewFileForTarget(Target{
		VolumeName: "Boot", Name: "Notes", ID: 7, IsFile: true,
		Type: "TEXT", Creator: "ttxt", ParentID: 2, Parent: "Boot",
		AbsolutePath: "Boot:Notes",
	})
	if document.FileType != "TEXT" || document.FileCreator != "ttxt" {
		t.Errorf("document alias = %q/%q", document.FileType, document.FileCreator)
	}
}
