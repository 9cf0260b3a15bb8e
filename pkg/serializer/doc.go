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

// Package serializer writes command output and reads structured input files.
//
// Output formats:
//   - json: indented JSON
//   - yaml: YAML with two-space indentation
//   - toml: TOML (configuration documents only; TOML has no null)
//   - table: aligned columns; a diff result renders one row per change
//   - console: human summary of a diff result with per-field changes
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatConsole, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// Reading picks the decoder from the file extension:
//
//	cfg, err := serializer.FromFile[config.File]("cdiff.toml")
package serializer
