package main

import (
	"errors"
	"log"

	"pdf-splitter/internal/config"
	"pdf-splitter/internal/partition"
	"pdf-splitter/internal/verify"
)

func runVerify(args []string) error {
	cfg, err := config.ParseVerifyConfig(args)
	if err != nil {
		return err
	}

	return verifyFiles(cfg.Files)
}

// verifyFiles сверяет число страниц каждой части с диапазоном из её имени.
func verifyFiles(files []string) error {
	var errs []error

	parts := make([]partition.Part, 0, len(files))
	for _, f := range files {
		r, err := partition.ParseOutputPath(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		parts = append(parts, partition.Part{Range: r, Path: f})
	}

	if err := verify.Parts(parts); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	log.Printf("[INFO] %d parts verified", len(parts))

	return nil
}
