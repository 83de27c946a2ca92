package cli

import (
	"fmt"
	"os"
	"strings"
)

const headerWidth = 60

// clear 只在真正的终端上清屏，管道/测试输出保持原样
func (m *Menu) clear() {
	if f, ok := m.out.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			fmt.Fprint(m.out, "\x1b[2J\x1b[H")
		}
	}
}

func (m *Menu) header(text string) {
	bar := strings.Repeat("=", headerWidth)
	pad := (headerWidth - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(m.out, bar)
	fmt.Fprintln(m.out, strings.Repeat(" ", pad)+text)
	fmt.Fprintln(m.out, bar)
}

func (m *Menu) pause() {
	fmt.Fprint(m.out, "\nPress <Enter> to continue...")
	_, _ = m.in.ReadString('\n')
}
