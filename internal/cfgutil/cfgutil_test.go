//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package cfgutil

import (
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcutil"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    btcutil.Amount
		wantErr bool
	}{
		{"1", 1e8, false},
		{"0.0001 BTC", 1e4, false},
		{"0.00000001", 1, false},
		{"2.5 mBTC", 250000, false},
		{"15 bits", 1500, false},
		{"15 uBTC", 1500, false},
		{"546 sat", 546, false},
		{"546 SATOSHI", 546, false},
		{"  0.5  ", 5e7, false},
		{"0.5 sat", 0, true},
		{"-1", 0, true},
		{"-5 sat", 0, true},
		{"1 doge", 0, true},
		{"1 BTC extra", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
	}
	for _, test := range tests {
		got, err := ParseAmount(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", test.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: got %v, want %v", test.in, got, test.want)
		}
	}
}

func TestAmountFlag(t *testing.T) {
	a := NewAmountFlag(5)
	if err := a.UnmarshalFlag("bogus"); err == nil {
		t.Fatal("expected error")
	}
	if a.Amount != 5 {
		t.Errorf("failed unmarshal changed value to %v", a.Amount)
	}
	if err := a.UnmarshalFlag("0.0001 BTC"); err != nil {
		t.Fatal(err)
	}
	s, _ := a.MarshalFlag()
	if s != btcutil.Amount(1e4).String() {
		t.Errorf("marshalled as %q", s)
	}
}

func TestExplicitPath(t *testing.T) {
	e := NewExplicitPath("default")
	if e.ExplicitlySet() || e.Value != "default" {
		t.Fatalf("fresh flag %+v", e)
	}
	if err := e.UnmarshalFlag("default"); err != nil {
		t.Fatal(err)
	}
	if !e.ExplicitlySet() {
		t.Errorf("setting the default value is not recorded")
	}

	os.Setenv("CFGUTIL_TEST_DIR", "/tmp/msig")
	defer os.Unsetenv("CFGUTIL_TEST_DIR")
	if err := e.UnmarshalFlag("$CFGUTIL_TEST_DIR/a/../b"); err != nil {
		t.Fatal(err)
	}
	if e.Value != "/tmp/msig/b" {
		t.Errorf("got %q", e.Value)
	}
	if got := e.Join("mainnet", "sessions.db"); got != "/tmp/msig/b/mainnet/sessions.db" {
		t.Errorf("join: got %q", got)
	}
}

func TestExpandPathHome(t *testing.T) {
	u, err := user.Current()
	if err != nil || u.HomeDir == "" {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/msigtool"); got != filepath.Join(u.HomeDir, "msigtool") {
		t.Errorf("got %q", got)
	}
	if got := ExpandPath("~"); got != filepath.Clean(u.HomeDir) {
		t.Errorf("bare ~: got %q", got)
	}
}

func TestFileExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "cfgutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "msigtool.conf")
	if ok, err := FileExists(path); ok || err != nil {
		t.Errorf("missing file: %v %v", ok, err)
	}
	if err := ioutil.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if ok, err := FileExists(path); !ok || err != nil {
		t.Errorf("existing file: %v %v", ok, err)
	}
}
