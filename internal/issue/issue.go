// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	InterpreterNotFoundId Id = iota + 1
	VersionTooLowId
	EntryPointMissingId
	ModuleMissingId
	DataDirFailedId
	ApplicationFailedId
	ConfigLoadFailedId
	ScaffoldFailedId
	PermissionDeniedId
)

type (
	// Id identifies an entry of the issue catalogue.
	Id int

	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// HttpLink is an external documentation link.
	HttpLink string

	// Issue is a catalogue entry with guidance for one failure class.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with a glamour style ("dark", "light", "notty"...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# No Python interpreter found!

The launcher tried every configured interpreter name and none of them answered
a version query.

## Things you can try:
- Install Python 3.7 or newer and make sure it is on your PATH
- On Windows, tick "Add python.exe to PATH" in the installer, or install the
  "py" launcher
- List the interpreter names to try in smsboot.cue:
~~~cue
interpreter: candidates: ["python3.11", "python3"]
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	versionTooLowIssue = &Issue{
		id: VersionTooLowId,
		mdMsg: `
# Python is too old!

The interpreter found on your PATH is older than the minimum version the
Sales Management System supports.

## Things you can try:
- Upgrade Python, then run the launcher again
- If several versions are installed, put the newer one first:
~~~cue
interpreter: candidates: ["python3.12", "python3", "python"]
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	entryPointMissingIssue = &Issue{
		id: EntryPointMissingId,
		mdMsg: `
# Application entry point not found!

The launcher resolves every path from the project directory and could not find
the application script there.

## Things you can try:
- Keep smsboot in the project root, next to the "src/" directory
- Point the launcher at the project explicitly:
~~~
$ smsboot --project-dir /path/to/sales_management_system
~~~
- Make sure all files were installed (re-extract the release archive)`,
	}

	moduleMissingIssue = &Issue{
		id: ModuleMissingId,
		mdMsg: `
# A required Python module is missing!

The interpreter was found but cannot import a module the application needs.

## Things you can try:
- On Ubuntu/Debian: "sudo apt-get install python3-tk"
- On CentOS/RHEL: "sudo yum install tkinter"
- On macOS and Windows tkinter ships with the python.org installers`,
	}

	dataDirFailedIssue = &Issue{
		id: DataDirFailedId,
		mdMsg: `
# Could not prepare the data directory!

The application stores its files under "data/" in the project directory.

## Things you can try:
- Check that you can write to the project directory
- Move the project out of a read-only location (e.g. a mounted image)`,
	}

	applicationFailedIssue = &Issue{
		id: ApplicationFailedId,
		mdMsg: `
# The application exited with an error!

The launcher started the application but it reported a failure. Its own
output above describes what went wrong.

## Things you can try:
- Scroll up and read the traceback printed by the application
- Run with "--verbose" to see which interpreter and paths were used`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the launcher configuration!

## Things you can try:
- Check the CUE syntax of smsboot.cue
- Print the effective configuration:
~~~
$ smsboot config show
~~~
- Regenerate a default file with "smsboot config init"`,
	}

	scaffoldFailedIssue = &Issue{
		id: ScaffoldFailedId,
		mdMsg: `
# Could not create the project skeleton!

## Things you can try:
- Check that the target directory is writable
- Make sure no regular file occupies one of the directory names`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Things you can try:
- Check the permissions of the project directory and the interpreter
- On POSIX systems make sure the interpreter is executable ("chmod +x")`,
	}

	issues = map[Id]*Issue{
		interpreterNotFoundIssue.Id(): interpreterNotFoundIssue,
		versionTooLowIssue.Id():       versionTooLowIssue,
		entryPointMissingIssue.Id():   entryPointMissingIssue,
		moduleMissingIssue.Id():       moduleMissingIssue,
		dataDirFailedIssue.Id():       dataDirFailedIssue,
		applicationFailedIssue.Id():   applicationFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		scaffoldFailedIssue.Id():      scaffoldFailedIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
	}
)

// Values returns every catalogue entry ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

// Get returns the catalogue entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
