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

// ModuleType classifies why a module was drawn a particular color, so that
// external renderers can style function modules (finders, timing, format,
// version, alignment) differently from the encoded data. Masking never
// changes a module's type, only its color.
type ModuleType int8

// ModuleType values.
const (
	Data ModuleType = iota
	FinderPattern
	AlignmentPattern
	HorizontalTiming
	VerticalTiming
	Format
	ModuleVersion
)

func (t ModuleType) String() string {
	switch t {
	case Data:
		return "Data"
	case FinderPattern:
		return "FinderPattern"
	case AlignmentPattern:
		return "AlignmentPattern"
	case HorizontalTiming:
		return "HorizontalTiming"
	case VerticalTiming:
		return "VerticalTiming"
	case Format:
		return "Format"
	case ModuleVersion:
		return "Version"
	default:
		return "Unknown"
	}
}

// isFunction reports whether a module of this type is a function module
// (anything other than encoded data).
func (t ModuleType) isFunction() bool {
	return t != Data
}
