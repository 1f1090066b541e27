// Copyright 2021 The Firedoc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fderr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewf(t *testing.T) {
	e := Newf(Internal, nil, "a %d b", 3)
	got := e.Error()
	want := "a 3 b (code=Internal)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatting(t *testing.T) {
	for i, test := range []struct {
		err  *Error
		verb string
		want []string // regexps, one per line
	}{
		{
			New(NotFound, nil, 1, "message"),
			"%v",
			[]string{`^message \(code=NotFound\)$`},
		},
		{
			New(NotFound, nil, 1, "message"),
			"%+v",
			[]string{
				`^message \(code=NotFound\):$`,
				`\s+firedoc.dev/internal/fderr.TestFormatting$`,
				`\s+.*/internal/fderr/fderr_test.go:\d+$`,
			},
		},
		{
			New(InvalidArgument, errors.New("wrapped"), 1, "message"),
			"%v",
			[]string{`^message \(code=InvalidArgument\): wrapped$`},
		},
		{
			New(InvalidArgument, errors.New("wrapped"), 1, ""),
			"%v",
			[]string{`^code=InvalidArgument: wrapped`},
		},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			gotString := fmt.Sprintf(test.verb, test.err)
			gotLines := strings.Split(gotString, "\n")
			if got, want := len(gotLines), len(test.want); got != want {
				t.Fatalf("got %d lines, want %d. got:\n%s", got, want, gotString)
			}
			for j, gl := range gotLines {
				matched, err := regexp.MatchString(test.want[j], gl)
				if err != nil {
					t.Fatal(err)
				}
				if !matched {
					t.Fatalf("line #%d: got %q, which doesn't match %q", j, gl, test.want[j])
				}
			}
		})
	}
}

func TestError(t *testing.T) {
	// Check that err.Error() == fmt.Sprintf("%s", err)
	for _, err := range []*Error{
		New(NotFound, nil, 1, "message"),
		New(InvalidArgument, errors.New("wrapped"), 1, "message"),
		New(InvalidArgument, errors.New("wrapped"), 1, ""),
	} {
		got := err.Error()
		want := fmt.Sprint(err)
		if got != want {
			t.Errorf("%v: got %q, want %q", err, got, want)
		}
	}
}

func TestCode(t *testing.T) {
	for _, test := range []struct {
		err  error
		want ErrorCode
	}{
		{nil, OK},
		{errors.New("not a firedoc error"), Unknown},
		{New(NotFound, nil, 1, ""), NotFound},
		{fmt.Errorf("wrapping: %w", New(InvalidArgument, nil, 1, "")), InvalidArgument},
	} {
		if got := Code(test.err); got != test.want {
			t.Errorf("Code(%v) = %v, want %v", test.err, got, test.want)
		}
	}
}

func TestGRPCCode(t *testing.T) {
	for _, test := range []struct {
		in   codes.Code
		want ErrorCode
	}{
		{codes.NotFound, NotFound},
		{codes.InvalidArgument, InvalidArgument},
		{codes.Internal, Internal},
		{codes.Unimplemented, Unimplemented},
		{codes.PermissionDenied, Unknown},
	} {
		err := status.Error(test.in, "")
		if got := GRPCCode(err); got != test.want {
			t.Errorf("GRPCCode(%v) = %v, want %v", test.in, got, test.want)
		}
	}
}
