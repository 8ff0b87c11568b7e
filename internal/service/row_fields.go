package service

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one loose key->value record from a spreadsheet import
type Row map[string]interface{}

// Alias tables: canonical field -> accepted header spellings, in priority
// order. Lookup tries exact key matches first, then case-insensitive ones.
var (
	aliasEmployeeID  = []string{"employeeId", "employee_id", "Employee Id"}
	aliasAssetID     = []string{"assetId", "asset_id", "Asset Id"}
	aliasEmpID       = []string{"empId", "emp_id", "Employee ID", "employeeEmpId"}
	aliasName        = []string{"name", "employeeName", "Employee Name"}
	aliasEmail       = []string{"email", "Email"}
	aliasBranch      = []string{"branch", "Branch"}
	aliasDepartment  = []string{"department", "Department"}
	aliasDesignation = []string{"designation", "Designation"}
	aliasMobile      = []string{"mobile", "Mobile"}
	aliasSerial      = []string{"serialNumber", "serial_number", "Serial Number", "assetSerialNumber"}
	aliasAssetType   = []string{"assetType", "asset_type", "Asset Type", "assetTypeName"}
	aliasStatus      = []string{"status", "Status"}
	aliasReturnReason = []string{"returnReason", "return_reason", "Return Reason"}
	aliasAssetStatus  = []string{"assetStatus", "asset_status", "Asset Status"}
	aliasRemarks      = []string{"remarks", "Remarks"}
)

// lookupField resolves a logical field from a row tolerating the accepted
// header spellings; first hit wins.
func lookupField(row Row, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			return fieldString(v), true
		}
	}
	for _, alias := range aliases {
		for key, v := range row {
			if strings.EqualFold(key, alias) {
				return fieldString(v), true
			}
		}
	}
	return "", false
}

func fieldValue(row Row, aliases []string) string {
	v, _ := lookupField(row, aliases)
	return v
}

// fieldString renders a cell value the way a spreadsheet column would show it
func fieldString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}
