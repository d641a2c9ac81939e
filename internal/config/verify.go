package config

type VerifyConfig struct {
	// Files: части для проверки; ожидаемое число страниц берётся из имени.
	Files []string
}

func ParseVerifyConfig(args []string) (VerifyConfig, error) {
	fs := newFlagSet("verify")
	var c VerifyConfig

	if err := fs.Parse(args); err != nil {
		return c, parseErr(err)
	}
	c.Files = fs.Args()

	if len(c.Files) == 0 {
		return c, ErrNoInputs
	}

	return c, nil
}
