// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"regexp"
	"strings"
)

const maxNameLength = 255

// names start with a letter or digit and may then carry dots, dashes, underscores,
// colons, slashes and brackets, which covers Go type names such as *pkg.Counter[int]
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9*][a-zA-Z0-9\-_.:/\[\]*]*$`)

type nameValidator struct {
	name string
	err  error
}

// NewNameValidator checks that name is non-blank, at most 255 characters
// and made of the characters allowed in a name. err is returned on failure.
func NewNameValidator(name string, err error) Validator {
	return &nameValidator{name: name, err: err}
}

func (x *nameValidator) Validate() error {
	return New(FailFast()).
		AddValidator(NewConditionValidator(strings.TrimSpace(x.name) != "", x.err)).
		AddValidator(NewConditionValidator(len(x.name) <= maxNameLength, x.err)).
		AddValidator(NewPatternValidator(namePattern, x.name, x.err)).
		Validate()
}
