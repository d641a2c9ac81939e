package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"pdf-splitter/internal/config"
	"pdf-splitter/internal/partition"
	"pdf-splitter/internal/pdfdoc"
)

func runPlan(args []string) error {
	cfg, err := config.ParsePlanConfig(args)
	if err != nil {
		return err
	}

	return plan(cfg, os.Stdout)
}

// plan печатает диапазоны и имена частей, ничего не записывая.
func plan(cfg config.PlanConfig, w io.Writer) error {
	svc := pdfdoc.New(pdfdoc.Options{Password: cfg.Password})

	for _, in := range cfg.Inputs {
		res, err := partition.Plan(svc, in, cfg.Partition())
		if err != nil {
			return err
		}

		log.Printf("[INFO] %s: %d pages, %d effective, %d parts", in, res.TotalPages, res.EffectivePages, len(res.Planned))

		for _, p := range res.Planned {
			if _, err := fmt.Fprintf(w, "%v\t%s\n", p.Range, p.Path); err != nil {
				return err
			}
		}
	}

	return nil
}
