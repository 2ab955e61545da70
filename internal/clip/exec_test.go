package clip

import "strings"

type call struct {
	stdin string
	argv  string
}

// fakeTools records every helper invocation and answers from a table keyed
// by the joined argv.
type fakeTools struct {
	calls   []call
	outputs map[string]string
	err     error
}

func (f *fakeTools) run(stdin []byte, name string, args ...string) ([]byte, error) {
	argv := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, call{stdin: string(stdin), argv: argv})
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.outputs[argv]), nil
}

func (f *fakeTools) argvs() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.argv)
	}
	return out
}
