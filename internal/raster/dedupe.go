package raster

import "sort"

// RemoveOverlapping collapses overlapping detections, keeping the one with
// higher confidence. A detection is dropped when its IoU with any kept
// detection exceeds iouThreshold.
func RemoveOverlapping(controls []Control, iouThreshold float64) []Control {
	if len(controls) == 0 {
		return controls
	}

	sorted := make([]Control, len(controls))
	copy(sorted, controls)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	keep := make([]Control, 0, len(sorted))
	for _, control := range sorted {
		overlaps := false
		for _, kept := range keep {
			if control.BBox.IoU(kept.BBox) > iouThreshold {
				overlaps = true
				break
			}
		}
		if !overlaps {
			keep = append(keep, control)
		}
	}

	return keep
}
