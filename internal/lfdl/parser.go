package lfdl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// configBuilder accumulates directive assignments in source order and
// folds them over the defaults, so the final TrackConfig is produced in
// one step and later directives overwrite earlier ones.
type configBuilder struct {
	assigns []func(*TrackConfig)
}

func (b *configBuilder) add(fn func(*TrackConfig)) {
	b.assigns = append(b.assigns, fn)
}

func (b *configBuilder) build() TrackConfig {
	cfg := DefaultConfig()
	for _, fn := range b.assigns {
		fn(&cfg)
	}
	return cfg
}

// Parse interprets an LFDL document. It never returns an error: each
// malformed line is skipped and recorded as a Diagnostic, and the
// remaining lines still contribute to the result. Blank lines and lines
// starting with '#' are ignored. The leading token of each line is
// matched case-insensitively.
func Parse(src string) *ParseResult {
	res := &ParseResult{}
	var cfg configBuilder

	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		head := strings.ToLower(fields[0])
		args := fields[1:]

		if strings.HasPrefix(head, "@") {
			assign, err := parseDirective(head[1:], args)
			if err != nil {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: lineNo, Message: err.Error()})
				continue
			}
			cfg.add(assign)
			continue
		}

		cmd, err := parseCommand(head, args, lineNo)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Line: lineNo, Message: err.Error()})
			continue
		}
		res.Commands = append(res.Commands, cmd)
	}

	res.Config = cfg.build()
	res.Valid = len(res.Commands) > 0
	return res
}

func parseDirective(name string, args []string) (func(*TrackConfig), error) {
	switch name {
	case "size":
		if len(args) != 2 {
			return nil, fmt.Errorf("diretiva @size espera 2 argumentos, recebeu %d", len(args))
		}
		w, err := parseNumber(args[0])
		if err != nil {
			return nil, err
		}
		h, err := parseNumber(args[1])
		if err != nil {
			return nil, err
		}
		return func(c *TrackConfig) { c.Size = Size{Width: w, Height: h} }, nil

	case "start":
		if len(args) != 3 {
			return nil, fmt.Errorf("diretiva @start espera 3 argumentos, recebeu %d", len(args))
		}
		x, err := parseNumber(args[0])
		if err != nil {
			return nil, err
		}
		y, err := parseNumber(args[1])
		if err != nil {
			return nil, err
		}
		angle, err := parseNumber(args[2])
		if err != nil {
			return nil, err
		}
		return func(c *TrackConfig) { c.Start = Start{X: x, Y: y, Angle: angle} }, nil

	default:
		return nil, fmt.Errorf("diretiva desconhecida %q", "@"+name)
	}
}

func parseCommand(name string, args []string, line int) (Command, error) {
	switch name {
	case "straight":
		if len(args) != 1 {
			return nil, fmt.Errorf("comando straight espera 1 argumento, recebeu %d", len(args))
		}
		d, err := parseNumber(args[0])
		if err != nil {
			return nil, err
		}
		return Straight{Distance: d, Line: line}, nil

	case "arc":
		if len(args) != 3 {
			return nil, fmt.Errorf("comando arc espera 3 argumentos, recebeu %d", len(args))
		}
		side := Side(strings.ToLower(args[0]))
		if side != SideLeft && side != SideRight {
			return nil, fmt.Errorf("lado do arco deve ser 'l' ou 'r', recebeu %q", args[0])
		}
		radius, err := parseNumber(args[1])
		if err != nil {
			return nil, err
		}
		angle, err := parseNumber(args[2])
		if err != nil {
			return nil, err
		}
		return Arc{Side: side, Radius: radius, Angle: angle, Line: line}, nil

	default:
		return nil, fmt.Errorf("comando desconhecido %q", name)
	}
}

// parseNumber rejects anything that is not a finite float, so a bad token
// fails the whole line instead of letting a NaN flow into the command list.
func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("valor numérico inválido %q", tok)
	}
	return v, nil
}
