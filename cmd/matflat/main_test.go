package main

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Chloe-Hyebin-Kim/Study/internal/codec"
)

func writeGrayPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseCrop(t *testing.T) {
	tests := []struct {
		in      string
		want    image.Rectangle
		wantErr bool
	}{
		{"1,2,3,4", image.Rect(1, 2, 4, 6), false},
		{" 0, 0, 10, 5 ", image.Rect(0, 0, 10, 5), false},
		{"1,2,3", image.Rectangle{}, true},
		{"a,2,3,4", image.Rectangle{}, true},
		{"-1,0,3,4", image.Rectangle{}, true},
		{"0,0,0,4", image.Rectangle{}, true},
	}
	for _, tt := range tests {
		got, err := parseCrop(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCrop(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCrop(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFlattenEncodeIdentify(t *testing.T) {
	dir := t.TempDir()
	src := image.NewGray(image.Rect(0, 0, 6, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 10)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "in.png")
	if err := os.WriteFile(in, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	raw := filepath.Join(dir, "out.raw")
	back := filepath.Join(dir, "back.png")

	steps := [][]string{
		{"flatten", "-i", in, "-o", raw, "--crop", "1,1,4,2", "--compress", "zstd"},
		{"encode", "-i", raw, "-o", back},
		{"identify", back},
	}
	for _, args := range steps {
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	f, err := os.Open(back)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding round-tripped image: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("round-tripped image is %T", img)
	}
	if gray.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds = %v", gray.Bounds())
	}
	for y := range 2 {
		for x := range 4 {
			if got, want := gray.GrayAt(x, y).Y, src.GrayAt(x+1, y+1).Y; got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBatchOutputs(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []string
		wantErr bool
	}{
		{"distinct", []string{"a/x.png", "b/y.png"}, false},
		{"same base in two dirs", []string{"a/img.png", "b/img.png"}, true},
		{"same stem, other extension", []string{"x.png", "x.jpg"}, true},
		{"repeated path", []string{"x.png", "x.png"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := batchOutputs("out", tt.inputs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("batchOutputs(%v) error = %v, wantErr %v", tt.inputs, err, tt.wantErr)
			}
			if err == nil && len(got) != len(tt.inputs) {
				t.Errorf("got %d outputs for %d inputs", len(got), len(tt.inputs))
			}
		})
	}
}

func TestBatch_CollidingNamesFailBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "img.png")
	b := filepath.Join(dir, "b", "img.png")
	writeGrayPNG(t, a, 2, 2)
	writeGrayPNG(t, b, 3, 2)
	out := filepath.Join(dir, "out")

	rootCmd.SetArgs([]string{"batch", "-o", out, "--compress", "none", a, b})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error for colliding output names")
	}
	if !strings.Contains(err.Error(), "img.raw") {
		t.Errorf("error does not name the colliding output: %v", err)
	}
	if entries, _ := os.ReadDir(out); len(entries) != 0 {
		t.Errorf("output dir not empty after failed batch: %v", entries)
	}
}

func TestBatch_WritesEveryInput(t *testing.T) {
	dir := t.TempDir()
	x := filepath.Join(dir, "x.png")
	y := filepath.Join(dir, "y.png")
	writeGrayPNG(t, x, 2, 2)
	writeGrayPNG(t, y, 3, 2)
	out := filepath.Join(dir, "out")

	rootCmd.SetArgs([]string{"batch", "-o", out, "--compress", "none", x, y})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("batch: %v", err)
	}
	for name, size := range map[string]int64{"x.raw": 4, "y.raw": 6} {
		fi, err := os.Stat(filepath.Join(out, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if fi.Size() != size {
			t.Errorf("%s is %d bytes, want %d", name, fi.Size(), size)
		}
		if _, err := os.Stat(filepath.Join(out, strings.TrimSuffix(name, ".raw")+".json")); err != nil {
			t.Errorf("sidecar for %s: %v", name, err)
		}
	}
}

// testProfile returns a minimal ICC header for the given data color space.
func testProfile(space string) []byte {
	p := make([]byte, 256)
	binary.BigEndian.PutUint32(p[0:], 256)
	p[8] = 4
	copy(p[12:], "mntr")
	copy(p[16:], space)
	copy(p[20:], "XYZ ")
	copy(p[36:], "acsp")
	return p
}

func TestEncode_EmbedsICC(t *testing.T) {
	t.Cleanup(func() { _ = encodeCmd.Flags().Set("icc", "") })

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeGrayPNG(t, in, 5, 3)
	raw := filepath.Join(dir, "in.raw")
	rootCmd.SetArgs([]string{"flatten", "-i", in, "-o", raw, "--compress", "none", "--crop", "0,0,5,3"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("flatten: %v", err)
	}

	gray := filepath.Join(dir, "gray.icc")
	rgb := filepath.Join(dir, "rgb.icc")
	if err := os.WriteFile(gray, testProfile("GRAY"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rgb, testProfile("RGB "), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		out     string
		icc     string
		wantErr string
	}{
		{"gray profile on gray8 jpeg", "ok.jpg", gray, ""},
		{"rgb profile on gray8 pixels", "bad.jpg", rgb, "does not apply"},
		{"png output", "bad.png", gray, "only supported for JPEG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.out)
			rootCmd.SetArgs([]string{"encode", "-i", raw, "-o", out, "--icc", tt.icc})
			err := rootCmd.Execute()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
				}
				if _, statErr := os.Stat(out); statErr == nil {
					t.Errorf("%s written despite error", tt.out)
				}
				return
			}
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			got, err := codec.JPEGICC(data)
			if err != nil {
				t.Fatalf("JPEGICC: %v", err)
			}
			if !bytes.Equal(got, testProfile("GRAY")) {
				t.Errorf("embedded profile differs (%d bytes)", len(got))
			}
			img, err := jpeg.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decoding output: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 5, 3) {
				t.Errorf("bounds = %v", img.Bounds())
			}
		})
	}
}
