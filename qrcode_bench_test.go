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

import (
	"errors"
	"testing"
)

func BenchmarkEncodeTextShort(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := EncodeText("https://example.com/", Medium); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeBinaryNearCapacity(b *testing.B) {
	text := make([]byte, 2000)
	for i := range text {
		text[i] = byte('a' + i%26)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeBinary(text, Low); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetPenaltyScore(b *testing.B) {
	q := newBlankQrCode(10)
	q.drawFunctionPatterns()
	data := make([]byte, numRawDataModules[10]/8)
	q.drawCodewords(data)
	q.applyMask(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.getPenaltyScore()
	}
}

// FuzzEncodeText feeds arbitrary strings through the full pipeline, checking
// only the invariants that must hold for any input: either encoding
// succeeds and produces a well-formed grid, or it fails with a QrError
// rather than panicking.
func FuzzEncodeText(f *testing.F) {
	for _, seed := range []string{"", "A", "12345", "HELLO WORLD", "日本語", "https://example.com/path?q=1"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		qr, err := EncodeText(text, Medium)
		if err != nil {
			var qrErr *QrError
			if !errors.As(err, &qrErr) {
				t.Fatalf("EncodeText(%q) returned a non-QrError: %v", text, err)
			}
			return
		}

		if qr.Size() != int(qr.Version())*4+17 {
			t.Fatalf("EncodeText(%q): size %d does not match version %d", text, qr.Size(), qr.Version())
		}
		for y := 0; y < qr.Size(); y++ {
			for x := 0; x < qr.Size(); x++ {
				if _, err := qr.Module(x, y); err != nil {
					t.Fatalf("EncodeText(%q): Module(%d, %d) error: %v", text, x, y, err)
				}
			}
		}
	})
}
