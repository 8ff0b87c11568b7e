package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupFieldPrefersExactMatch(t *testing.T) {
	row := Row{"emp_id": "E1", "EMP_ID": "E2"}

	v, ok := lookupField(row, aliasEmpID)
	assert.True(t, ok)
	assert.Equal(t, "E1", v)
}

func TestLookupFieldFallsBackToCaseInsensitive(t *testing.T) {
	row := Row{"SERIALNUMBER": "sn-1"}

	v, ok := lookupField(row, aliasSerial)
	assert.True(t, ok)
	assert.Equal(t, "sn-1", v)
}

func TestLookupFieldMissing(t *testing.T) {
	_, ok := lookupField(Row{"unrelated": "x"}, aliasSerial)
	assert.False(t, ok)
}

func TestFieldStringRendersCellValues(t *testing.T) {
	// JSON numbers arrive as float64; spreadsheets shouldn't grow ".000000"
	assert.Equal(t, "42", fieldString(float64(42)))
	assert.Equal(t, "4.5", fieldString(4.5))
	assert.Equal(t, "true", fieldString(true))
	assert.Equal(t, "", fieldString(nil))
	assert.Equal(t, "trimmed", fieldString("  trimmed  "))
}
