package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/deploymenttheory/go-classicbox/internal/common/plistutil"
	"github.com/deploymenttheory/go-classicbox/internal/config"
)

// renderStructured prints v as JSON or XML plist when a structured
// output format is selected. Returns true if it handled the output;
// text rendering stays with the caller.
func renderStructured(v interface{}) (bool, error) {
	switch config.Instance.Output {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		fmt.Println(string(data))
		return true, nil
	case "plist":
		data, err := plistutil.Marshal(v, plistutil.FormatXML)
		if err != nil {
			return true, err
		}
		fmt.Println(string(data))
		return true, nil
	default:
		return false, nil
	}
}
