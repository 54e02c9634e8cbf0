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
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	kanzi "github.com/txrx-dev/paqcm"
	"github.com/txrx-dev/paqcm/bitstream"
	"github.com/txrx-dev/paqcm/entropy"
	"github.com/pkg/errors"
)

const (
	_DECOMP_DEFAULT_BUFFER_SIZE = 65536
	_DECOMP_STDIN               = "STDIN"
	_DECOMP_STDOUT              = "STDOUT"
)

// Decompressor is the mirror image of Compressor: it reads the container
// header, rebuilds a predictor in the matching state, and decodes exactly
// the original-length byte count.
type Decompressor struct {
	verbosity  uint
	overwrite  bool
	inputName  string
	outputName string
	listeners  []kanzi.Listener
}

// NewDecompressor creates a Decompressor from parsed CLI arguments.
func NewDecompressor(argsMap map[string]any) (*Decompressor, error) {
	this := &Decompressor{listeners: make([]kanzi.Listener, 0)}

	this.inputName = argsMap["inputName"].(string)
	delete(argsMap, "inputName")
	this.outputName = argsMap["outputName"].(string)
	delete(argsMap, "outputName")
	this.verbosity = argsMap["verbosity"].(uint)
	delete(argsMap, "verbosity")

	if force, prst := argsMap["overwrite"]; prst == true {
		this.overwrite = force.(bool)
		delete(argsMap, "overwrite")
	}

	return this, nil
}

// AddListener registers an event listener. Returns true if added.
func (this *Decompressor) AddListener(bl kanzi.Listener) bool {
	if bl == nil {
		return false
	}

	this.listeners = append(this.listeners, bl)
	return true
}

func (this *Decompressor) notify(evt *kanzi.Event) {
	defer func() {
		//lint:ignore SA9003 Ignore panics in listeners
		// nolint:staticcheck
		recover()
	}()

	for _, bl := range this.listeners {
		bl.ProcessEvent(evt)
	}
}

// Decompress reads the container header, validates the checksum, and
// decodes exactly original_length bytes from the arithmetic-coded payload.
// Returns an exit code and the number of bytes written.
func (this *Decompressor) Decompress() (int, uint64) {
	var input io.ReadCloser
	var err error

	if strings.EqualFold(this.inputName, _DECOMP_STDIN) {
		input = os.Stdin
	} else {
		if input, err = os.Open(this.inputName); err != nil {
			fmt.Printf("Cannot open input file '%s': %v\n", this.inputName, err)
			return kanzi.ERR_OPEN_FILE, 0
		}

		defer input.Close()
	}

	var output io.WriteCloser

	if strings.EqualFold(this.outputName, _DECOMP_STDOUT) {
		output = os.Stdout
	} else {
		if !this.overwrite {
			if _, err := os.Stat(this.outputName); err == nil {
				fmt.Printf("File '%s' exists and the 'force' option has not been provided\n", this.outputName)
				return kanzi.ERR_OVERWRITE_FILE, 0
			}
		}

		if output, err = os.Create(this.outputName); err != nil {
			fmt.Printf("Cannot create output file '%s': %v\n", this.outputName, err)
			return kanzi.ERR_CREATE_FILE, 0
		}

		defer output.Close()
	}

	if this.verbosity > 0 {
		evt := kanzi.NewEvent(kanzi.EVT_DECOMPRESSION_START, 0, 0, 0, kanzi.EVT_HASH_NONE, time.Now())
		this.notify(evt)
	}

	before := time.Now()
	written, err := this.decode(input, output)

	if err != nil {
		fmt.Printf("An unexpected condition happened. Exiting...\n%v\n", err)
		return kanzi.ERR_PROCESS_BLOCK, written
	}

	after := time.Now()

	if this.verbosity > 0 {
		evt := kanzi.NewEvent(kanzi.EVT_DECOMPRESSION_END, 0, int64(written), 0, kanzi.EVT_HASH_NONE, time.Now())
		this.notify(evt)
	}

	if this.verbosity > 1 {
		delta := after.Sub(before).Nanoseconds() / 1000000
		msg := fmt.Sprintf("Decompressed %s: => %d bytes in %d ms", this.inputName, written, delta)
		fmt.Println(msg)
	}

	return 0, written
}

func (this *Decompressor) decode(input io.ReadCloser, output io.Writer) (uint64, error) {
	ibs, err := bitstream.NewDefaultInputBitStream(input, _DECOMP_DEFAULT_BUFFER_SIZE)

	if err != nil {
		return 0, errors.Wrap(err, "creating input bitstream")
	}

	defer ibs.Close()

	level := ibs.ReadBits(8)

	if level > _MAX_LEVEL {
		return 0, errors.Errorf("bad header: memory level %d outside [0,%d]", level, _MAX_LEVEL)
	}

	originalLen := entropy.ReadVLI(ibs)
	postLen := entropy.ReadVLI(ibs)
	chk := byte(ibs.ReadBits(8))

	if chk != checksumByte(originalLen^postLen) {
		return 0, errors.New("damaged file: checksum mismatch")
	}

	predictor := entropy.NewPredictor(uint(level))
	dec, err := entropy.NewRangeDecoder(ibs, predictor)

	if err != nil {
		return 0, errors.Wrap(err, "creating range decoder")
	}

	remaining := postLen
	buf := make([]byte, _DECOMP_DEFAULT_BUFFER_SIZE)
	var written uint64

	for remaining > 0 {
		chunk := uint64(len(buf))

		if chunk > remaining {
			chunk = remaining
		}

		if _, err := dec.Read(buf[:chunk]); err != nil {
			return written, errors.Wrap(err, "decoding payload")
		}

		n, err := output.Write(buf[:chunk])
		written += uint64(n)

		if err != nil {
			return written, errors.Wrap(err, "writing decoded output")
		}

		remaining -= chunk
	}

	dec.Dispose()
	return written, nil
}
