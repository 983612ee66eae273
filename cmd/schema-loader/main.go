package main

import (
	"fmt"
	"io"
	"os"

	"ariga.io/atlas-provider-gorm/gormschema"

	"github.com/autoscribeHQ/autoscribe/internal/recorder"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(
		&recorder.Recording{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
