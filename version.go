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

// Version is a QR code version number in the range [MinVersion, MaxVersion].
// It determines the side length of the symbol: size = 4*version + 17.
type Version int8

// MinVersion and MaxVersion bound every version accepted by this package.
const (
	MinVersion = Version(1)
	MaxVersion = Version(40)
)

// Mask is a QR code mask pattern in the range [0, 7], or AutoMask to request
// automatic selection of the mask with the lowest penalty score.
type Mask int8

// AutoMask requests that EncodeSegments choose the mask with the lowest
// penalty score instead of a caller-specified one.
const AutoMask = Mask(-1)
