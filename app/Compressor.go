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
	_COMP_DEFAULT_BUFFER_SIZE = 65536
	_COMP_STDIN               = "STDIN"
	_COMP_STDOUT              = "STDOUT"
)

// Compressor drives one whole-file compression: unlike a block codec, the
// predictor carries context across the entire input, so there is exactly
// one arithmetic-coded payload per stream, not one per block.
type Compressor struct {
	verbosity  uint
	overwrite  bool
	level      uint
	inputName  string
	outputName string
	listeners  []kanzi.Listener
}

// NewCompressor creates a Compressor from parsed CLI arguments.
func NewCompressor(argsMap map[string]any) (*Compressor, error) {
	this := &Compressor{listeners: make([]kanzi.Listener, 0)}

	this.level = argsMap["level"].(uint)
	delete(argsMap, "level")

	if this.level > _MAX_LEVEL {
		return nil, errors.Errorf("invalid memory level (must be in [0..%d]), got %d", _MAX_LEVEL, this.level)
	}

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
func (this *Compressor) AddListener(bl kanzi.Listener) bool {
	if bl == nil {
		return false
	}

	this.listeners = append(this.listeners, bl)
	return true
}

func (this *Compressor) notify(evt *kanzi.Event) {
	defer func() {
		//lint:ignore SA9003 Ignore panics in listeners
		// nolint:staticcheck
		recover()
	}()

	for _, bl := range this.listeners {
		bl.ProcessEvent(evt)
	}
}

// Compress reads the whole input, runs it through the predictor-driven range
// coder, and writes the container described in the stream layout. Returns an
// exit code and the number of bytes written.
func (this *Compressor) Compress() (int, uint64) {
	var input io.ReadCloser
	var err error

	if strings.EqualFold(this.inputName, _COMP_STDIN) {
		input = os.Stdin
	} else {
		if input, err = os.Open(this.inputName); err != nil {
			fmt.Printf("Cannot open input file '%s': %v\n", this.inputName, err)
			return kanzi.ERR_OPEN_FILE, 0
		}

		defer input.Close()
	}

	data, err := io.ReadAll(input)

	if err != nil {
		fmt.Printf("Failed to read '%s': %v\n", this.inputName, err)
		return kanzi.ERR_READ_FILE, 0
	}

	var output io.WriteCloser

	if strings.EqualFold(this.outputName, _COMP_STDOUT) {
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
		evt := kanzi.NewEvent(kanzi.EVT_COMPRESSION_START, 0, int64(len(data)), 0, kanzi.EVT_HASH_NONE, time.Now())
		this.notify(evt)
	}

	before := time.Now()
	written, err := this.encode(data, output)

	if err != nil {
		fmt.Printf("An unexpected condition happened. Exiting...\n%v\n", err)
		return kanzi.ERR_PROCESS_BLOCK, written
	}

	after := time.Now()

	if this.verbosity > 0 {
		evt := kanzi.NewEvent(kanzi.EVT_COMPRESSION_END, 0, int64(written), 0, kanzi.EVT_HASH_NONE, time.Now())
		this.notify(evt)
	}

	if this.verbosity > 1 {
		delta := after.Sub(before).Nanoseconds() / 1000000
		msg := fmt.Sprintf("Compressed %s: %d => %d in %d ms", this.inputName, len(data), written, delta)
		fmt.Println(msg)
	}

	return 0, written
}

// encode writes the container: level byte, original-length VLI,
// post-preprocessor-length VLI (equal to the original length - there is no
// preprocessor in this module), checksum byte, then the arithmetic-coded
// payload, all through a single bitstream so the flushed range coder byte
// is simply the bitstream's last write.
func (this *Compressor) encode(data []byte, output io.WriteCloser) (uint64, error) {
	obs, err := bitstream.NewDefaultOutputBitStream(output, _COMP_DEFAULT_BUFFER_SIZE)

	if err != nil {
		return 0, errors.Wrap(err, "creating output bitstream")
	}

	obs.WriteBits(uint64(this.level), 8)

	originalLen := uint64(len(data))
	postLen := originalLen // no preprocessor stage in this module
	entropy.WriteVLI(obs, originalLen)
	entropy.WriteVLI(obs, postLen)
	obs.WriteBits(uint64(checksumByte(originalLen^postLen)), 8)

	predictor := entropy.NewPredictor(this.level)
	enc, err := entropy.NewRangeEncoder(obs, predictor)

	if err != nil {
		return 0, errors.Wrap(err, "creating range encoder")
	}

	if _, err := enc.Write(data); err != nil {
		return 0, errors.Wrap(err, "encoding payload")
	}

	enc.Dispose()
	written := obs.Written()

	if err := obs.Close(); err != nil {
		return written / 8, errors.Wrap(err, "flushing output bitstream")
	}

	return written / 8, nil
}
