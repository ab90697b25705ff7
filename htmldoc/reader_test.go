package htmldoc

import (
	"strings"
	"testing"
)

func TestConvert_Charset(t *testing.T) {
	// "Kayıt Kuralları" and "Başlık" in windows-1254.
	src := []byte("<html><head><meta charset=\"windows-1254\"><title>Ba\xfel\xfdk</title></head>" +
		"<body><h2>Kay\xfdt Kurallar\xfd</h2></body></html>")

	out, msgs, err := Convert(src, NavigationExclusionStandard)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out, "<h2>Kayıt Kuralları</h2>") {
		t.Errorf("charset not decoded:\n%s", out)
	}
	if len(msgs) != 0 {
		t.Errorf("unexpected messages %v", msgs)
	}
}

func TestConvert_Fragment(t *testing.T) {
	out, _, err := Convert([]byte("<h1>Giriş</h1><p>Metin</p>"), NavigationExclusionStandard)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out, "<body><h1>Giriş</h1><p>Metin</p></body>") {
		t.Errorf("fragment not wrapped:\n%s", out)
	}
}

func TestOpenBytes_Mode(t *testing.T) {
	src := []byte("<html><body><nav>Menü</nav><p>Gövde</p></body></html>")

	r, err := OpenBytes(src)
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	out, err := r.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if strings.Contains(out, "Menü") || !strings.Contains(out, "Gövde") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if len(r.Messages()) != 1 {
		t.Errorf("messages = %v", r.Messages())
	}

	r, err = OpenBytes(src)
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	r.SetNavigationExclusion(NavigationExclusionNone)
	out, err = r.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(out, "Menü") || len(r.Messages()) != 0 {
		t.Errorf("none mode removed content:\n%s %v", out, r.Messages())
	}
}
