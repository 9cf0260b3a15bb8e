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

package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/NVIDIA/collection-diff/pkg/normalize"
)

// TextDiff returns a unified line diff of a changed field, or an empty string
// when neither value spans multiple lines.
func TextDiff(field string, fc FieldChange) string {
	oldText := normalize.Display(fc.Old)
	newText := normalize.Display(fc.New)
	if !strings.Contains(oldText, "\n") && !strings.Contains(newText, "\n") {
		return ""
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: field + " (source)",
		ToFile:   field + " (target)",
		Context:  1,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return ""
	}
	return out
}
