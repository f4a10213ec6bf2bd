package pairing

import "testing"

func TestCanonicalBasename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "IMG123.JPG", want: "IMG123"},
		{name: "directory stripped", in: "/photos/2025/06/IMG123.JPG", want: "IMG123"},
		{name: "pixel raw variant", in: "PXL_20250615_143621025.RAW-02.ORIGINAL.dng", want: "PXL_20250615_143621025"},
		{name: "pixel cover variant", in: "PXL_20250615_143621025.RAW-01.COVER.jpg", want: "PXL_20250615_143621025"},
		{name: "pixel plain", in: "upload/PXL_20250615_143621025.jpg", want: "PXL_20250615_143621025"},
		{name: "hyphen suffix", in: "DSC0001-edit.tif", want: "DSC0001"},
		{name: "dot suffix", in: "IMG_1234.RAW-01.dng", want: "IMG_1234"},
		{name: "short date is not a device name", in: "IMG_2025061_1.jpg", want: "IMG_2025061_1"},
		{name: "date with hyphens keeps first token", in: "2024-01-01-party.jpg", want: "2024"},
		{name: "no extension", in: "DSC0001", want: "DSC0001"},
		{name: "empty", in: "", want: ""},
		{name: "trailing slash", in: "photos/", want: ""},
		{name: "leading hyphen", in: "-edit.jpg", want: ""},
		{name: "hidden file has no extension", in: ".hidden", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalBasename(tc.in); got != tc.want {
				t.Fatalf("CanonicalBasename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalBasenameIsIdempotent(t *testing.T) {
	for _, in := range []string{
		"PXL_20250615_143621025.RAW-02.ORIGINAL.dng",
		"DSC0001-edit.tif",
		"IMG123.JPG",
		"2024-01-01-party.jpg",
		"a/b/c/holiday.cr2",
	} {
		once := CanonicalBasename(in)
		if twice := CanonicalBasename(once); twice != once {
			t.Fatalf("canonicalizing %q twice changed %q to %q", in, once, twice)
		}
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"IMG123.JPG":     ".jpg",
		"IMG123.jpg":     ".jpg",
		"a/b.c/IMG123":   "",
		"archive.tar.gz": ".gz",
		".hidden":        "",
		"..double":       "",
		"name.":          ".",
		"":               "",
	}
	for in, want := range cases {
		if got := Extension(in); got != want {
			t.Fatalf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchDevicePatternRequiresAnchor(t *testing.T) {
	if _, ok := matchDevicePattern("x-PXL_20250615_1"); ok {
		t.Fatal("expected pattern to be anchored at the start of the stem")
	}
	prefix, ok := matchDevicePattern("MVIMG_20240101_120000.MP")
	if !ok || prefix != "MVIMG_20240101_120000" {
		t.Fatalf("unexpected match: %q %v", prefix, ok)
	}
}
