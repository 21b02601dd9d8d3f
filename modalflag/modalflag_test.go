// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package modalflag_test

import (
	"bytes"
	"testing"

	"github.com/armbox/armbox/modalflag"
)

func TestNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{})

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}
}

func TestBoolFlag(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")

	if *testFlag != false {
		t.Error("expected *testFlag to be false before Parse()")
	}

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		t.Error("expected ParseContinue")
	}
	if err != nil {
		t.Errorf("did not expect error: %s", err)
	}

	if *testFlag != true {
		t.Error("expected *testFlag to be true after Parse()")
	}

	if len(md.RemainingArgs()) != 2 {
		t.Error("expected number of RemainingArgs() to be 2 after Parse()")
	}
	if md.GetArg(0) != "1" {
		t.Errorf("GetArg(0) = %q, want %q", md.GetArg(0), "1")
	}
}

func TestUint64Flag(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"-ram", "65536"})
	ram := md.AddUint64("ram", 1024, "ram size")

	if _, err := md.Parse(); err != nil {
		t.Fatalf("did not expect error: %s", err)
	}
	if *ram != 65536 {
		t.Errorf("*ram = %d, want 65536", *ram)
	}
}

func TestNoHelpAvailable(t *testing.T) {
	var out bytes.Buffer

	md := modalflag.Modes{Output: &out}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	if out.String() != "No help available\n" {
		t.Errorf("unexpected help message: %q", out.String())
	}
}

func TestHelpFlags(t *testing.T) {
	var out bytes.Buffer

	md := modalflag.Modes{Output: &out}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	if p != modalflag.ParseHelp {
		t.Error("expected ParseHelp return value from Parse()")
	}

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"

	if out.String() != expectedHelp {
		t.Errorf("unexpected help message: %q", out.String())
	}
}

func TestUnknownFlagIsAnError(t *testing.T) {
	var out bytes.Buffer

	md := modalflag.Modes{Output: &out}
	md.NewArgs([]string{"-nosuchflag"})

	p, err := md.Parse()
	if p != modalflag.ParseError {
		t.Error("expected ParseError return value from Parse()")
	}
	if err == nil {
		t.Error("expected an error")
	}
}
