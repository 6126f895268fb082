package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Text renders a raw column value as a string.  NULL becomes "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// Int converts a raw column value into an int.  NULL and values that do
// not parse yield 0.
func Int(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(Text(v)), 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// EmployeeFromRow decodes a row keyed by column name.  Columns missing
// from the row leave the zero value in place.
func EmployeeFromRow(row map[string]any) Employee {
	return Employee{
		FullName:          Text(row[ColumnFullName]),
		FirstName:         Text(row[ColumnFirstName]),
		MiddleName:        Text(row[ColumnMiddleName]),
		LastName:          Text(row[ColumnLastName]),
		Suffix:            Text(row[ColumnSuffix]),
		PreferredName:     Text(row[ColumnPreferredName]),
		Position:          Text(row[ColumnPosition]),
		JobTitle:          Text(row[ColumnJobTitle]),
		AssignedUnit:      MultiValue(row[ColumnAssignedUnit]),
		OfficeLocation:    Text(row[ColumnOfficeLocation]),
		WorkEmail:         Text(row[ColumnWorkEmail]),
		WorkPhone:         Text(row[ColumnWorkPhone]),
		PhotoID:           strings.TrimSpace(Text(row[ColumnPhotoID])),
		Race:              MultiValue(row[ColumnRace]),
		ServiceDays:       Int(row[ColumnServiceDays]),
		ServicePercentile: Int(row[ColumnServicePercentile]),
	}
}
