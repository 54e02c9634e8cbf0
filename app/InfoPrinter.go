/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	kanzi "github.com/txrx-dev/paqcm"
)

// InfoPrinter is an event listener that prints progress for the one
// compression or decompression pass a Compressor/Decompressor runs: unlike
// a block codec there is no per-block ID to key off, so it only tracks the
// single start timestamp and reports elapsed time and size at the end.
type InfoPrinter struct {
	writer    io.Writer
	level     uint
	startTime time.Time
	startSize int64
}

// NewInfoPrinter creates an InfoPrinter that writes to writer, reporting
// detail proportional to infoLevel (the CLI's verbosity).
func NewInfoPrinter(infoLevel uint, writer io.Writer) (*InfoPrinter, error) {
	if writer == nil {
		return nil, errors.New("invalid null writer parameter")
	}

	return &InfoPrinter{level: infoLevel, writer: writer}, nil
}

// ProcessEvent receives a compression/decompression lifecycle event and
// writes a log line for it.
func (this *InfoPrinter) ProcessEvent(evt *kanzi.Event) {
	switch evt.Type() {
	case kanzi.EVT_COMPRESSION_START:
		this.startTime = evt.Time()
		this.startSize = evt.Size()

		if this.level >= 3 {
			fmt.Fprintf(this.writer, "Compressing %d bytes...\n", this.startSize)
		}

	case kanzi.EVT_DECOMPRESSION_START:
		this.startTime = evt.Time()

		if this.level >= 3 {
			fmt.Fprintln(this.writer, "Decompressing...")
		}

	case kanzi.EVT_COMPRESSION_END:
		if this.level >= 3 {
			durationMS := evt.Time().Sub(this.startTime).Nanoseconds() / int64(time.Millisecond)
			msg := fmt.Sprintf("Compression done: %d bytes written in %d ms", evt.Size(), durationMS)

			if this.startSize > 0 {
				msg += fmt.Sprintf(" (%d%%)", evt.Size()*100/this.startSize)
			}

			fmt.Fprintln(this.writer, msg)
		}

	case kanzi.EVT_DECOMPRESSION_END:
		if this.level >= 3 {
			durationMS := evt.Time().Sub(this.startTime).Nanoseconds() / int64(time.Millisecond)
			fmt.Fprintf(this.writer, "Decompression done: %d bytes written in %d ms\n", evt.Size(), durationMS)
		}
	}
}
