// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package component

// Core field names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldType        = "type"
	FieldSchemaPath  = "schemaPath"
)

// Category identifies which component list of a collection a record belongs to.
type Category string

const (
	CategoryMetrics    Category = "metrics"
	CategoryDimensions Category = "dimensions"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// Categories lists every category in display order.
var Categories = []Category{CategoryMetrics, CategoryDimensions}

// DefaultFields are compared in every comparison.
var DefaultFields = []string{
	FieldName,
	FieldTitle,
	FieldDescription,
	FieldType,
	FieldSchemaPath,
}

// ExtendedFields are added to DefaultFields in extended comparison mode.
var ExtendedFields = []string{
	"attribution",
	"format",
	"bucketing",
	"persistence",
	"formula",
	"precision",
	"hidden",
	"hideFromReporting",
	"isCalculated",
	"segmentId",
	"derivedFieldId",
	"sourceFieldId",
	"sourceFieldName",
	"sourceFieldType",
	"dataSetType",
	"dataType",
	"behavior",
	"fieldDefinition",
	"includeExcludeSetting",
	"noValueOptionsSetting",
}

// BreakingFields are fields whose change marks a record as breaking.
var BreakingFields = []string{
	FieldType,
	FieldSchemaPath,
}

// IsBreakingField reports whether a change to field is breaking.
func IsBreakingField(field string) bool {
	for _, f := range BreakingFields {
		if f == field {
			return true
		}
	}
	return false
}

// IsCoreField reports whether field is one of the fixed Component fields.
func IsCoreField(field string) bool {
	switch field {
	case FieldID, FieldName, FieldTitle, FieldDescription, FieldType, FieldSchemaPath:
		return true
	default:
		return false
	}
}
