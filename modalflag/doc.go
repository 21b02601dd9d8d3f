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

// Package modalflag is a thin wrapper around the standard library's flag
// package. It buffers the flag package's own usage output instead of
// letting it print: on -help the buffered usage is written to Output (or
// "No help available" when no flags are defined), and on an
// unrecognised flag nothing is printed and the error is returned.
//
// Usage mirrors flag.FlagSet, but arguments are supplied up front with
// NewArgs and a fresh flag set is established with NewMode before adding
// flags:
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.NewMode()
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
//	switch p, err := md.Parse(); p {
//	case ParseHelp:
//		return
//	case ParseError:
//		fmt.Fprintln(os.Stderr, err)
//		os.Exit(1)
//	}
//
// Non-flag arguments are retrieved afterwards with RemainingArgs or
// GetArg.
package modalflag
