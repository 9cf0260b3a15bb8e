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

package serializer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/collection-diff/pkg/component"
	"github.com/NVIDIA/collection-diff/pkg/diff"
	"github.com/NVIDIA/collection-diff/pkg/normalize"
)

var resultHeader = []string{"CATEGORY", "ID", "NAME", "CHANGE", "BREAKING", "FIELDS"}

func resultRows(r *diff.Result) [][]string {
	var rows [][]string
	for _, c := range component.Categories {
		for _, rec := range r.Records(c) {
			breaking := ""
			if rec.IsBreaking {
				breaking = "yes"
			}
			rows = append(rows, []string{
				c.String(),
				rec.ID,
				rec.Name,
				rec.ChangeType.String(),
				breaking,
				strings.Join(sortedFields(rec.ChangedFields), ","),
			})
		}
	}
	return rows
}

func sortedFields(m map[string]diff.FieldChange) []string {
	out := make([]string, 0, len(m))
	for f := range m {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteConsole writes a human-readable report of r: the sides, collection
// metadata changes, per category counts, and every non-unchanged record
// with its field changes, followed by the change and breaking change counts.
// Multi-line text changes are shown as line diffs.
func WriteConsole(out io.Writer, r *diff.Result) error {
	var b strings.Builder
	title := cases.Title(language.English)

	fmt.Fprintf(&b, "Source: %s\n", describe(r.Source))
	fmt.Fprintf(&b, "Target: %s\n", describe(r.Target))

	if r.MetadataChanges.ChangeType == diff.ChangeModified {
		b.WriteString("\nCollection metadata changed:\n")
		writeFieldChanges(&b, r.MetadataChanges.ChangedFields)
	}

	breaking := 0
	for _, c := range component.Categories {
		s := r.Summary.Category(c)
		if s == nil {
			continue
		}
		breaking += len(diff.Breaking(r.Records(c)))
		fmt.Fprintf(&b, "\n%s: %d -> %d (+%d -%d ~%d, %d unchanged, %.1f%% changed)\n",
			title.String(c.String()), s.SourceCount, s.TargetCount,
			s.Added, s.Removed, s.Modified, s.Unchanged, s.ChangedPct)

		for _, rec := range diff.FilterChanged(r.Records(c)) {
			flag := ""
			if rec.IsBreaking {
				flag = " [BREAKING]"
			}
			fmt.Fprintf(&b, "  %s %s (%s)%s\n", marker(rec.ChangeType), rec.Name, rec.ID, flag)
			writeFieldChanges(&b, rec.ChangedFields)
		}
	}

	if r.HasChanges {
		fmt.Fprintf(&b, "\n%d change(s) found\n", r.Summary.TotalChanges)
		if breaking > 0 {
			fmt.Fprintf(&b, "%d breaking change(s)\n", breaking)
		}
	} else {
		b.WriteString("\nNo differences found\n")
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func describe(d diff.Descriptor) string {
	name := d.CollectionName
	if name == "" {
		name = d.CollectionID
	}
	s := fmt.Sprintf("%s (%s, %s)", name, d.CollectionID, d.Kind)
	if d.SnapshotPath != "" {
		s += " " + d.SnapshotPath
	}
	if d.CreatedAt != nil && !d.CreatedAt.IsZero() {
		s += " @ " + d.CreatedAt.UTC().Format("2006-01-02 15:04:05Z")
	}
	return s
}

func marker(ct diff.ChangeType) string {
	switch ct {
	case diff.ChangeAdded:
		return "+"
	case diff.ChangeRemoved:
		return "-"
	case diff.ChangeModified:
		return "~"
	default:
		return " "
	}
}

func writeFieldChanges(b *strings.Builder, changes map[string]diff.FieldChange) {
	for _, f := range sortedFields(changes) {
		fc := changes[f]
		if td := diff.TextDiff(f, fc); td != "" {
			fmt.Fprintf(b, "      %s:\n", f)
			for _, line := range strings.Split(strings.TrimRight(td, "\n"), "\n") {
				fmt.Fprintf(b, "        %s\n", line)
			}
			continue
		}
		fmt.Fprintf(b, "      %s: %s -> %s\n", f, normalize.Display(fc.Old), normalize.Display(fc.New))
	}
}
