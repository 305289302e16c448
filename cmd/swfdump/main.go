/*
DESCRIPTION
  Swfdump is a program that decodes an SWF file and prints a per-frame
  display-list report to stdout.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements swfdump, a bare bones program that walks an
// SWF file's timeline frame by frame and prints the resulting display
// list to stdout.
package main

import (
	"bytes"
	"compress/zlib"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/swf/codec/swf"
)

// Logging related constants.
const (
	logPath      = "swfdump.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	filePtr := flag.String("f", "", "Path to the SWF file to decode.")
	flag.Parse()

	if *filePtr == "" {
		fmt.Fprintln(os.Stderr, "swfdump: -f is required")
		os.Exit(1)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	buf, err := os.ReadFile(*filePtr)
	if err != nil {
		l.Error("could not read file", "path", *filePtr, "error", err)
		os.Exit(1)
	}

	doc, err := swf.Decode(buf, swf.Options{Logger: l, Inflate: zlibInflate})
	if err != nil {
		l.Error("decode failed", "error", err)
		os.Exit(1)
	}
	for _, recErr := range doc.Errors {
		l.Warning("recovered tag decode failure", "error", recErr)
	}

	fmt.Printf("version %d, %dx%d twips, %d frames\n",
		doc.Header.Version,
		doc.Header.FrameSize.XMax-doc.Header.FrameSize.XMin,
		doc.Header.FrameSize.YMax-doc.Header.FrameSize.YMin,
		doc.Header.FrameCount)

	tl := doc.Timeline
	for i := 0; i < tl.FrameCount(); i++ {
		tl.Seek(i)
		objects := tl.DisplayList().ObjectsInRenderOrder()
		fmt.Printf("frame %d: %d object(s)\n", i, len(objects))
		for _, obj := range objects {
			fmt.Printf("  depth=%d characterId=%d translate=(%d,%d)\n",
				obj.Depth, obj.CharacterID, obj.Matrix.TranslateX, obj.Matrix.TranslateY)
		}
	}
}

// zlibInflate is the Inflater passed to swf.Decode, used only for CWS
// (zlib-compressed) documents; ZWS (LZMA) files are recognised by the
// header parser but this program does not wire an LZMA decompressor.
func zlibInflate(compressed []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
