package config

type PlanConfig struct {
	Common
}

func ParsePlanConfig(args []string) (PlanConfig, error) {
	fs := newFlagSet("plan")
	var c PlanConfig

	c.Common.register(fs)

	if err := fs.Parse(args); err != nil {
		return c, parseErr(err)
	}
	c.Inputs = fs.Args()

	return c, c.Validate()
}
