/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcodegen

import "fmt"

// ErrorKind classifies the caller-facing failure modes of this package.
// Internal inconsistencies are not represented here; they panic instead,
// since they indicate a bug in this package rather than bad input.
type ErrorKind int8

// ErrorKind values.
const (
	ErrInvalidCharacter ErrorKind = iota
	ErrValueOutOfRange
	ErrDataTooLong
	ErrInvalidValue
	ErrCapacityExceeded
	ErrIndexOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidCharacter:
		return "invalid character"
	case ErrValueOutOfRange:
		return "value out of range"
	case ErrDataTooLong:
		return "data too long"
	case ErrInvalidValue:
		return "invalid value"
	case ErrCapacityExceeded:
		return "capacity exceeded"
	case ErrIndexOutOfRange:
		return "index out of range"
	default:
		return "unknown error"
	}
}

// QrError is returned by every caller-facing operation in this package that
// can fail on bad input. Use errors.As to recover the Kind.
type QrError struct {
	Kind ErrorKind
	Msg  string
}

func (e *QrError) Error() string {
	return fmt.Sprintf("qrcodegen: %s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *QrError {
	return &QrError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
