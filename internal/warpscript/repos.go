package warpscript

// AddRepoStatement registers a WarpFleet repository for macro resolution.
const AddRepoStatement = "WF.ADDREPO"

// ExtractRepositories returns the repositories registered in statements, in
// order of appearance. A WF.ADDREPO only counts when the statement right
// before it is a quoted string literal; other occurrences are skipped.
func ExtractRepositories(statements []string) []string {
	repos := []string{}

	for i, st := range statements {
		if st != AddRepoStatement || i == 0 {
			continue
		}
		if repo, ok := unquote(statements[i-1]); ok {
			repos = append(repos, repo)
		}
	}

	return repos
}

// unquote strips matching single or double quotes around s.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	quote := s[0]
	if (quote != '"' && quote != '\'') || s[len(s)-1] != quote {
		return "", false
	}
	return s[1 : len(s)-1], true
}
