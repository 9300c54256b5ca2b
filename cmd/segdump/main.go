// Command segdump is a command-line tool to segment an image into
// connected regions, chain them into text lines, and print a summary. It
// can also write a debug image with each chain's bounding box drawn over
// the input.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dlecorfec/segchain"
)

func main() {
	var in string
	var overlay string
	var threshold float64
	var satol, srtol, drmin, drmax, slope, aatol, artol, prec float64
	var lmin, lmax int

	flag.StringVar(&in, "i", "", "Input image file path")
	flag.StringVar(&overlay, "overlay", "", "Optional output PNG path for a chain bounding-box overlay")
	flag.Float64Var(&threshold, "threshold", 0, "Same-region pixel difference threshold")

	defaults := segchain.DefaultChainOptions()
	flag.Float64Var(&satol, "satol", defaults.SAbsTol, "Absolute size tolerance")
	flag.Float64Var(&srtol, "srtol", defaults.SRelTol, "Relative size tolerance")
	flag.Float64Var(&drmin, "drmin", defaults.DRMin, "Minimum gap/height ratio")
	flag.Float64Var(&drmax, "drmax", defaults.DRMax, "Maximum gap/height ratio")
	flag.Float64Var(&slope, "slope", defaults.Slope, "Maximum |dy/dx| for an aligned pair")
	flag.Float64Var(&aatol, "aatol", defaults.AAbsTol, "Absolute alignment tolerance")
	flag.Float64Var(&artol, "artol", defaults.ARelTol, "Relative alignment tolerance")
	flag.Float64Var(&prec, "prec", defaults.Prec, "Vertical shear convergence precision")
	flag.IntVar(&lmin, "lmin", defaults.LMin, "Minimum chain length")
	flag.IntVar(&lmax, "lmax", defaults.LMax, "Maximum chain length")
	flag.Parse()

	if in == "" {
		fmt.Fprintln(os.Stderr, "Input file path must be specified")
		os.Exit(1)
	}

	sgm, err := segchain.NewSegmentationFromFile(in, threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant segment input %s: %s\n", in, err)
		os.Exit(1)
	}

	opts := segchain.ChainOptions{
		SAbsTol: satol, SRelTol: srtol, DRMin: drmin, DRMax: drmax,
		Slope: slope, AAbsTol: aatol, ARelTol: artol, Prec: prec,
		LMin: lmin, LMax: lmax,
	}
	pool, err := segchain.NewChainPool(sgm, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant build chain pool: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d segments, %d chains\n", sgm.NSegments(), pool.Number())
	for i := 0; i < pool.Number(); i++ {
		length, _ := pool.Length(i)
		bbox, _ := pool.BBox(i)
		vshear, _ := pool.VerticalShear(i)
		hshear, _ := pool.HorizontalShear(i)
		fmt.Printf("chain %d: length=%d bbox=(%.1f,%.1f)-(%.1f,%.1f) vshear=%.4f hshear=%.4f\n",
			i, length, bbox.XMin, bbox.YMin, bbox.XMax, bbox.YMax, vshear, hshear)
	}

	if overlay != "" {
		if err := writeOverlay(in, overlay, sgm, pool); err != nil {
			fmt.Fprintf(os.Stderr, "cant write overlay %s: %s\n", overlay, err)
			os.Exit(1)
		}
	}
}

func writeOverlay(in, out string, sgm *segchain.Segmentation, pool *segchain.ChainPool) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)

	red := color.RGBA{R: 255, A: 255}
	for i := 0; i < sgm.NSegments(); i++ {
		bbox, err := sgm.BBox(i)
		if err != nil {
			continue
		}
		drawRect(dst, bbox.XMin, bbox.YMin, bbox.XMax, bbox.YMax, red)
	}

	blue := color.RGBA{B: 255, A: 255}
	for i := 0; i < pool.Number(); i++ {
		members, err := pool.Segments(i)
		if err != nil || len(members) == 0 {
			continue
		}
		box, err := sgm.BBox(members[0])
		if err != nil {
			continue
		}
		for _, m := range members[1:] {
			mb, err := sgm.BBox(m)
			if err != nil {
				continue
			}
			if mb.XMin < box.XMin {
				box.XMin = mb.XMin
			}
			if mb.XMax > box.XMax {
				box.XMax = mb.XMax
			}
			if mb.YMin < box.YMin {
				box.YMin = mb.YMin
			}
			if mb.YMax > box.YMax {
				box.YMax = mb.YMax
			}
		}
		drawRect(dst, box.XMin-1, box.YMin-1, box.XMax+1, box.YMax+1, blue)
	}

	output, err := os.Create(out)
	if err != nil {
		return err
	}
	defer output.Close()
	return png.Encode(output, dst)
}

func drawRect(img *image.RGBA, xmin, ymin, xmax, ymax int, c color.Color) {
	for x := xmin; x <= xmax; x++ {
		img.Set(x, ymin, c)
		img.Set(x, ymax, c)
	}
	for y := ymin; y <= ymax; y++ {
		img.Set(xmin, y, c)
		img.Set(xmax, y, c)
	}
}
