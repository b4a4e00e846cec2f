package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"

	"github.com/menta2k/websafespec"
	"github.com/menta2k/websafespec/internal/config"
	"github.com/menta2k/websafespec/internal/utils"
	"github.com/menta2k/websafespec/pkg/types"
)

func doSpecs(f *websafespec.Fitter) error {
	data := pterm.TableData{{"ID", "Platform", "Name", "Size", "Description"}}
	for _, s := range f.Specs() {
		data = append(data, []string{s.ID, s.Platform, s.Name, s.Dimensions().String(), s.Description})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func doCheck(f *websafespec.Fitter, imagePath, specID string) error {
	src, err := f.LoadSource(imagePath)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("%s: %dpx (width) x %dpx (height)", imagePath, src.Dimensions.Width, src.Dimensions.Height)

	report, err := f.Check(src, specID)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println(report.Spec.Label())
	for _, l := range report.SpecLines() {
		pterm.Println(l)
	}
	if report.Matches() {
		pterm.Success.Println(report.Summary())
	} else {
		pterm.Warning.Println(report.Summary())
		items := make([]pterm.BulletListItem, 0, 2)
		for _, l := range report.OptionLines() {
			items = append(items, pterm.BulletListItem{Level: 0, Text: l})
		}
		if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
			return err
		}
	}
	pterm.Info.Println(report.OutputLine())
	return nil
}

func doPlan(f *websafespec.Fitter, imagePath, specID string, policy types.Policy) error {
	src, err := f.LoadSource(imagePath)
	if err != nil {
		return err
	}
	plan, spec, err := f.Plan(src, specID, policy)
	if err != nil {
		return err
	}
	r := plan.Rect()
	data := pterm.TableData{
		{"field", "value"},
		{"spec", spec.ID},
		{"policy", policy.String()},
		{"source", src.Dimensions.String()},
		{"canvas", spec.Dimensions().String()},
		{"dest_x", fmt.Sprintf("%g", plan.DestX)},
		{"dest_y", fmt.Sprintf("%g", plan.DestY)},
		{"dest_width", fmt.Sprintf("%g", plan.DestWidth)},
		{"dest_height", fmt.Sprintf("%g", plan.DestHeight)},
		{"fill_background", fmt.Sprintf("%t", plan.FillBackground)},
		{"pixels", fmt.Sprintf("%v", r)},
		{"file", f.Filename(spec, policy)},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func doExport(ctx context.Context, f *websafespec.Fitter, imagePath, specID string, policy types.Policy, outDir string) error {
	src, err := f.LoadSource(imagePath)
	if err != nil {
		return err
	}
	slog.Debug("source measured", "path", src.Path, "format", src.Format, "size", src.Dimensions.String())

	res, err := f.Export(ctx, src, specID, policy, outDir)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("%s (%s, %s)", res.Path, res.Spec.Dimensions(), utils.FormatFileSize(res.Bytes))
	return nil
}

func doConfigInit(path string) error {
	if path == "" {
		path = config.GetConfigPath()
	}
	if utils.FileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Default().SaveToFile(path); err != nil {
		return err
	}
	pterm.Success.Printfln("wrote %s", path)
	return nil
}

func printPrompt(msg string) {
	pterm.Error.Println(msg)
}
