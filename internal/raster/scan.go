package raster

import "image"

// ScanConfig controls a full raster scan. Base sizes are for 72 DPI and are
// multiplied by ScaleFactor before use.
type ScanConfig struct {
	ScaleFactor   float64
	Checkbox      CheckboxConfig
	Radio         RadioConfig
	InputBox      InputBoxConfig
	Band          BandConfig
	MinLineLength int
}

// DefaultScanConfig returns the scan parameters for the given scale factor
// (raster pixels per document point).
func DefaultScanConfig(scaleFactor float64) ScanConfig {
	return ScanConfig{
		ScaleFactor:   scaleFactor,
		Checkbox:      DefaultCheckboxConfig(),
		Radio:         DefaultRadioConfig(),
		InputBox:      DefaultInputBoxConfig(),
		Band:          BandConfig{MinGap: 3, MinRowHeight: 6},
		MinLineLength: DefaultMinLineLength,
	}
}

// ScanResult holds everything a raster scan finds on a page image.
type ScanResult struct {
	Width       int
	Height      int
	ScaleFactor float64
	Checkboxes  []Control
	Radios      []Control
	InputBoxes  []Control
	Borders     Borders
	RowBands    []Band
}

// Controls returns all detected controls in one slice, checkboxes first.
func (s *ScanResult) Controls() []Control {
	all := make([]Control, 0, len(s.Checkboxes)+len(s.Radios)+len(s.InputBoxes))
	all = append(all, s.Checkboxes...)
	all = append(all, s.Radios...)
	return append(all, s.InputBoxes...)
}

// Scan runs every raster detector over one page image: preprocessing,
// control detection with resolution-scaled parameters, ruling line
// extraction and row band projection.
func Scan(img image.Image, cfg ScanConfig) *ScanResult {
	gray, binary := Preprocess(img)
	bounds := gray.Bounds()
	scale := cfg.ScaleFactor
	if scale <= 0 {
		scale = 1
	}

	checkboxCfg := CheckboxConfig{
		MinSize: int(float64(cfg.Checkbox.MinSize) * scale),
		MaxSize: int(float64(cfg.Checkbox.MaxSize) * scale),
	}
	inputCfg := InputBoxConfig{
		MinWidth:  int(float64(cfg.InputBox.MinWidth) * scale),
		MinHeight: int(float64(cfg.InputBox.MinHeight) * scale),
		MaxHeight: int(float64(cfg.InputBox.MaxHeight) * scale),
	}
	bandCfg := BandConfig{
		MinGap:       int(float64(cfg.Band.MinGap) * scale),
		MinRowHeight: int(float64(cfg.Band.MinRowHeight) * scale),
	}

	return &ScanResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ScaleFactor: scale,
		Checkboxes:  DetectCheckboxes(gray, binary, checkboxCfg),
		Radios:      DetectRadioButtons(gray, binary, scale, cfg.Radio),
		InputBoxes:  DetectInputBoxes(gray, inputCfg),
		Borders:     DetectBorders(gray, cfg.MinLineLength),
		RowBands:    DetectRowBands(gray, bandCfg),
	}
}
