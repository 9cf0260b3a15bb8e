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

package resolver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/NVIDIA/collection-diff/pkg/defaults"
	"github.com/NVIDIA/collection-diff/pkg/errors"
)

// Strategy picks one collection out of several that share a name.
type Strategy interface {
	Resolve(ref string, candidates []Collection) (Collection, error)
}

// NonInteractive fails every ambiguous reference.
type NonInteractive struct{}

// Resolve returns an AMBIGUOUS_IDENTIFIER error listing the candidates.
func (NonInteractive) Resolve(ref string, candidates []Collection) (Collection, error) {
	return Collection{}, ambiguous(ref, candidates)
}

func ambiguous(ref string, candidates []Collection) error {
	ids := make([]string, 0, len(candidates))
	var sb strings.Builder
	fmt.Fprintf(&sb, "collection name %q matches %d collections; use an id instead:", ref, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
		fmt.Fprintf(&sb, "\n  %s", c)
	}
	return errors.NewWithContext(errors.ErrCodeAmbiguousIdentifier, sb.String(), map[string]any{
		"ref":        ref,
		"candidates": ids,
	})
}

// Interactive asks the user to pick a candidate by number. Prompts from
// concurrent resolutions are serialized.
type Interactive struct {
	In          io.Reader
	Out         io.Writer
	MaxAttempts int

	mu     sync.Mutex
	reader *bufio.Reader
}

// NewInteractive returns a prompt reading from in and writing to out.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{In: in, Out: out, MaxAttempts: defaults.InteractiveMaxAttempts}
}

// Resolve prints the numbered candidates and reads a selection. Input that
// ends before a valid selection, or too many invalid selections, yields an
// AMBIGUOUS_IDENTIFIER error.
func (p *Interactive) Resolve(ref string, candidates []Collection) (Collection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = defaults.InteractiveMaxAttempts
	}

	fmt.Fprintf(p.Out, "Multiple collections are named %q:\n", ref)
	for i, c := range candidates {
		line := fmt.Sprintf("  %d) %s", i+1, c)
		if c.Owner != "" {
			line += " owner: " + c.Owner
		}
		fmt.Fprintln(p.Out, line)
	}

	for range attempts {
		fmt.Fprintf(p.Out, "Select [1-%d]: ", len(candidates))
		line, err := p.reader.ReadString('\n')
		choice := strings.TrimSpace(line)
		if choice != "" {
			if n, convErr := strconv.Atoi(choice); convErr == nil && n >= 1 && n <= len(candidates) {
				return candidates[n-1], nil
			}
			fmt.Fprintf(p.Out, "Invalid selection %q\n", choice)
		}
		if err != nil {
			break
		}
	}

	return Collection{}, ambiguous(ref, candidates)
}
