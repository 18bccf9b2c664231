package shell

import (
	"embed"
	"path"
)

//go:embed helptext
var helptext embed.FS

func usage(mode Mode) string {
	dat, err := helptext.ReadFile(path.Join("helptext", "usage-"+mode.String()+".txt"))
	if err != nil {
		return "Error loading helptext: " + err.Error() + "\n"
	}
	return string(dat)
}

func usageTopic(topic string) string {
	dat, err := helptext.ReadFile(path.Join("helptext", path.Base(topic)+".txt"))
	if err != nil {
		return "There is no help text for the topic " + topic + "\n"
	}
	return string(dat)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage(sc.curMode)), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
