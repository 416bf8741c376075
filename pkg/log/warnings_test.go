package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

func TestRegisterWarningSink(t *testing.T) {
	var buf bytes.Buffer
	RegisterWarningSink(&buf)
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewDegenerateColumnWarning("cell_alpha", 90, 0))

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("warning output is not JSON: %v", err)
	}

	if record["level"] != "warn" {
		t.Errorf("level = %v, want warn", record["level"])
	}
	if record["column"] != "cell_alpha" {
		t.Errorf("column = %v, want cell_alpha", record["column"])
	}
	if record["type"] != "DegenerateColumnWarning" {
		t.Errorf("type = %v, want DegenerateColumnWarning", record["type"])
	}
}
