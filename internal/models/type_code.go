package models

import (
	"errors"
	"fmt"
	"strings"
)

var errUnknownTypeCode = errors.New("unknown type code")

// TypeCode - DBMS independent class of the column type. It is enough for the loaders to shape
// the textual values before writing.
type TypeCode int

const (
	TypeUnknown TypeCode = iota
	TypeBoolean
	TypeInteger
	TypeBigInt
	TypeNumeric
	TypeFloat
	TypeVarchar
	TypeText
	TypeDate
	TypeTimestamp
	TypeJSON
	TypeBytes
)

var typeCodeNames = map[TypeCode]string{
	TypeUnknown:   "unknown",
	TypeBoolean:   "boolean",
	TypeInteger:   "integer",
	TypeBigInt:    "bigint",
	TypeNumeric:   "numeric",
	TypeFloat:     "float",
	TypeVarchar:   "varchar",
	TypeText:      "text",
	TypeDate:      "date",
	TypeTimestamp: "timestamp",
	TypeJSON:      "json",
	TypeBytes:     "bytes",
}

// dbmsTypes - data type names reported by information_schema of postgresql and mysql.
var dbmsTypes = map[string]TypeCode{
	"bool":                        TypeBoolean,
	"boolean":                     TypeBoolean,
	"bit":                         TypeBoolean,
	"tinyint":                     TypeInteger,
	"smallint":                    TypeInteger,
	"mediumint":                   TypeInteger,
	"int":                         TypeInteger,
	"int2":                        TypeInteger,
	"int4":                        TypeInteger,
	"integer":                     TypeInteger,
	"bigint":                      TypeBigInt,
	"int8":                        TypeBigInt,
	"decimal":                     TypeNumeric,
	"numeric":                     TypeNumeric,
	"money":                       TypeNumeric,
	"real":                        TypeFloat,
	"float":                       TypeFloat,
	"float4":                      TypeFloat,
	"float8":                      TypeFloat,
	"double":                      TypeFloat,
	"double precision":            TypeFloat,
	"char":                        TypeVarchar,
	"character":                   TypeVarchar,
	"varchar":                     TypeVarchar,
	"character varying":           TypeVarchar,
	"uuid":                        TypeVarchar,
	"text":                        TypeText,
	"tinytext":                    TypeText,
	"mediumtext":                  TypeText,
	"longtext":                    TypeText,
	"enum":                        TypeText,
	"date":                        TypeDate,
	"time":                        TypeTimestamp,
	"datetime":                    TypeTimestamp,
	"timestamp":                   TypeTimestamp,
	"timestamptz":                 TypeTimestamp,
	"timestamp without time zone": TypeTimestamp,
	"timestamp with time zone":    TypeTimestamp,
	"json":                        TypeJSON,
	"jsonb":                       TypeJSON,
	"bytea":                       TypeBytes,
	"binary":                      TypeBytes,
	"varbinary":                   TypeBytes,
	"blob":                        TypeBytes,
	"longblob":                    TypeBytes,
}

// TypeCodeFromName - resolves the type code from the data type name. Unknown types are
// reported as TypeUnknown and are left as is by the loaders.
func TypeCodeFromName(name string) TypeCode {
	tc, ok := dbmsTypes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return TypeUnknown
	}
	return tc
}

func (t TypeCode) String() string {
	name, ok := typeCodeNames[t]
	if !ok {
		return fmt.Sprintf("TypeCode(%d)", int(t))
	}
	return name
}

func (t TypeCode) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TypeCode) UnmarshalText(data []byte) error {
	name := strings.ToLower(string(data))
	for tc, n := range typeCodeNames {
		if n == name {
			*t = tc
			return nil
		}
	}
	if tc, ok := dbmsTypes[name]; ok {
		*t = tc
		return nil
	}
	return fmt.Errorf("parse \"%s\": %w", data, errUnknownTypeCode)
}
