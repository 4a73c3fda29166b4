package main

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	hjson "github.com/10088/hjson-go"
)

func yamlRun(cfg *YamlConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Yaml.Parse(cc, args)
	if err != nil {
		cfg.Yaml.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range argsOrStdin(args) {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		var out []byte
		if cfg.Reverse {
			out, err = yamlToHjson(data)
		} else {
			out, err = hjsonToYaml(data)
		}
		if err != nil {
			return fmt.Errorf("error converting %s: %w", arg, err)
		}
		if err := cfg.emit(cc, out); err != nil {
			return err
		}
	}
	return nil
}

func hjsonToYaml(data []byte) ([]byte, error) {
	v, err := hjson.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(toInterface(v))
}

func yamlToHjson(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return hjson.Marshal(fromInterface(raw))
}

// toInterface converts a value tree to the plain shapes yaml.Marshal
// understands; yaml.MapSlice keeps the insertion order of maps.
func toInterface(v hjson.Value) any {
	switch v.Type() {
	case hjson.Map:
		ms := make(yaml.MapSlice, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			key, _ := v.Key(i)
			ms = append(ms, yaml.MapItem{Key: key, Value: toInterface(v.Get(key))})
		}
		return ms
	case hjson.Vector:
		s := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, _ := v.Index(i)
			s = append(s, toInterface(elem))
		}
		return s
	case hjson.Bool:
		return v.ToBool()
	case hjson.Int64:
		i, _ := v.ToInt64()
		return i
	case hjson.Double:
		d, _ := v.ToDouble()
		return d
	case hjson.String:
		s, _ := v.ToString()
		return s
	default:
		return nil
	}
}

func fromInterface(raw any) hjson.Value {
	switch x := raw.(type) {
	case yaml.MapSlice:
		m := hjson.NewMap()
		for _, item := range x {
			m.Set(fmt.Sprint(item.Key), fromInterface(item.Value))
		}
		return m
	case map[string]any:
		m := hjson.NewMap()
		for _, key := range sortedKeys(x) {
			m.Set(key, fromInterface(x[key]))
		}
		return m
	case []any:
		arr := hjson.NewVector()
		for _, elem := range x {
			arr.PushBack(fromInterface(elem))
		}
		return arr
	case uint64:
		if x <= 1<<63-1 {
			return hjson.New(int64(x))
		}
		return hjson.New(float64(x))
	default:
		return hjson.New(raw)
	}
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
