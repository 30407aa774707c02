package assembler

type hoverInfoFormatsType struct {
	labelDefinition string
	labelReference  string
	integerLiteral  string
	predefined      string
	variable        string
	compute         string
	computeField    string
}

var hoverInfoFormats = hoverInfoFormatsType{
	labelDefinition: "**(%s)**\n\nLabel bound to ROM address `%d`",
	labelReference:  "**@%s**\n\nLabel declared on line %d, ROM address `%d`\n\n`%s`",
	integerLiteral:  "**@%s**\n\nConstant `%d`\n\n`%s`",
	predefined:      "**@%s**\n\nPredefined symbol, RAM address `%d`\n\n`%s`",
	variable:        "**@%s**\n\nVariable, RAM address `%d`\n\n`%s`",
	compute:         "**%s**\n\n| field | mnemonic | bits |\n|---|---|---|\n%s\n`%s`",
	computeField:    "| %s | `%s` | `%s` |\n",
}
