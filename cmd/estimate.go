package cmd

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cooktime/calculator"
	"cooktime/material"
	"cooktime/oven"
)

var (
	lengthCm     float64
	thicknessCm  float64
	temperatureF float64
	materialName string
	allMaterials bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the cook time for one item",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := material.Parse(materialName)
		if err != nil {
			return err
		}
		s := oven.NewSettings()
		s.SetLength(lengthCm)
		s.SetThickness(thicknessCm)
		s.SetTemperature(temperatureF)
		if err := s.SetMaterial(kind); err != nil {
			return err
		}
		calc := calculator.NewCalculator(cfg)
		if allMaterials {
			return estimateAll(cmd.Context(), cmd.OutOrStdout(), calculator.NewExecutor(calc, cfg.Workers), *s)
		}
		return estimateOne(cmd.Context(), cmd.OutOrStdout(), calc, *s)
	},
}

func init() {
	estimateCmd.Flags().Float64Var(&lengthCm, "length", oven.DefaultLengthCm, "Item length (cm)")
	estimateCmd.Flags().Float64Var(&thicknessCm, "thickness", oven.DefaultThicknessCm, "Item thickness (cm)")
	estimateCmd.Flags().Float64Var(&temperatureF, "oven", oven.DefaultTemperatureF, "Oven temperature (°F)")
	estimateCmd.Flags().StringVar(&materialName, "material", oven.DefaultMaterial.Name(), fmt.Sprintf("Material, one of %q", material.Names()))
	estimateCmd.Flags().BoolVar(&allMaterials, "all", false, "Estimate every material for the same size and oven temperature")
}

func estimateOne(ctx context.Context, w io.Writer, calc *calculator.Calculator, s oven.Settings) error {
	in, err := s.Input()
	if err != nil {
		return err
	}
	res, err := calc.Estimate(ctx, in)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"steps":   res.Steps,
		"dt":      res.TimeStep,
		"seconds": res.Seconds,
	}).Info("计算完成")
	_, err = fmt.Fprintf(w, "%s: %s\n", s.Material.Name(), oven.FormatMinutes(res.Minutes))
	return err
}

func estimateAll(ctx context.Context, w io.Writer, e *calculator.Executor, s oven.Settings) error {
	presets := material.All()
	inputs := make([]calculator.Input, 0, len(presets))
	for _, p := range presets {
		s.Material = p.Kind
		in, err := s.Input()
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}
	for i, o := range e.EstimateAll(ctx, inputs) {
		var err error
		if o.Err != nil {
			_, err = fmt.Fprintf(w, "%s: %v\n", presets[i].Name, o.Err)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", presets[i].Name, oven.FormatMinutes(o.Result.Minutes))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
