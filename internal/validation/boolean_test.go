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
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"
)

type booleanTestSuite struct {
	suite.Suite
}

func TestBooleanValidator(t *testing.T) {
	suite.Run(t, new(booleanTestSuite))
}

func (s *booleanTestSuite) TestBooleanValidator() {
	s.Run("happy path when condition is true", func() {
		err := NewBooleanValidator(true, "error message").Validate()
		s.Assert().NoError(err)
	})
	s.Run("happy path when condition is false", func() {
		err := NewBooleanValidator(false, "error message").Validate()
		s.Assert().EqualError(err, "error message")
	})
	s.Run("condition with a sentinel error", func() {
		sentinel := errors.New("sentinel")
		s.Assert().NoError(NewConditionValidator(true, sentinel).Validate())
		s.Assert().ErrorIs(NewConditionValidator(false, sentinel).Validate(), sentinel)
	})
}

func (s *booleanTestSuite) TestPatternValidator() {
	pattern := regexp.MustCompile(`^[a-z]+$`)
	s.Run("happy path", func() {
		s.Assert().NoError(NewPatternValidator(pattern, "abc", nil).Validate())
	})
	s.Run("with the generic error", func() {
		s.Assert().ErrorIs(NewPatternValidator(pattern, "ABC", nil).Validate(), errInvalidExpression)
	})
	s.Run("with a custom error", func() {
		custom := errors.New("custom")
		s.Assert().ErrorIs(NewPatternValidator(pattern, "123", custom).Validate(), custom)
	})
}
