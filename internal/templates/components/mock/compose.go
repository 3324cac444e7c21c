package mock

// Compose builds the generic slash-command mock-up: the bot's response with
// the command header, the content and an optional button row.
func Compose(props Props) Conversation {
	props = props.withDefaults()

	sections := []Section{
		InteractionHeader{
			Profile:   props.Author,
			Content:   props.CommandContent,
			Command:   true,
			Ephemeral: props.Ephemeral,
		},
	}
	if props.Content != "" {
		sections = append(sections, Body{Text: props.Content})
	}
	if row := buttonRow(props); row != nil {
		sections = append(sections, row)
	}

	return Conversation{
		Light: props.Light,
		Turns: []Turn{{Role: Response, Profile: props.Bot, Sections: sections}},
	}
}

// ComposeSelect is Compose with a select menu in place of the button row.
func ComposeSelect(props Props) Conversation {
	props = props.withDefaults()

	sections := []Section{
		InteractionHeader{
			Profile:   props.Author,
			Content:   props.CommandContent,
			Command:   true,
			Ephemeral: props.Ephemeral,
		},
	}
	if props.Content != "" {
		sections = append(sections, Body{Text: props.Content})
	}
	sections = append(sections, NewSelectMenu(props.MenuOptions, props.MenuDisabled, props.Placeholder))

	return Conversation{
		Light: props.Light,
		Turns: []Turn{{Role: Response, Profile: props.Bot, Sections: sections}},
	}
}

type BaseCommandProps struct {
	Props
	// IsCommand marks a slash command; otherwise the turn starts with the
	// user's plain invocation message.
	IsCommand bool
	// Reply shows the header on a prefix command's answer.
	Reply bool
	// Mention highlights a reply that pings the author.
	Mention bool
	// Children, when set, replace the composed response sections.
	Children []Section
}

// ComposeBaseCommand builds a command exchange. The invocation message is
// shown only for non-slash commands. The header is shown for slash commands
// and replies, and is highlighted only for a mentioning reply.
func ComposeBaseCommand(props BaseCommandProps) Conversation {
	props.Props = props.Props.withDefaults()
	conv := Conversation{Light: props.Light}

	if !props.IsCommand {
		conv.Turns = append(conv.Turns, Turn{
			Role:     Invocation,
			Profile:  props.Author,
			Sections: []Section{Body{Text: props.CommandContent}},
		})
	}

	response := Turn{Role: Response, Profile: props.Bot}
	if props.Children != nil {
		response.Sections = append(response.Sections, props.Children...)
		conv.Turns = append(conv.Turns, response)
		return conv
	}

	highlight := props.Reply && props.Mention && !props.IsCommand
	if props.IsCommand || props.Reply {
		response.Sections = append(response.Sections, InteractionHeader{
			Profile:   props.Author,
			Content:   props.CommandContent,
			Command:   props.IsCommand,
			Ephemeral: props.Ephemeral && props.IsCommand,
			Highlight: highlight,
		})
	}
	if props.Content != "" {
		response.Sections = append(response.Sections, Body{Text: props.Content, Markdown: true, Highlight: highlight})
	}
	if row := buttonRow(props.Props); row != nil {
		response.Sections = append(response.Sections, row)
	}
	conv.Turns = append(conv.Turns, response)
	return conv
}

// PingCommand is a prefix command answered with a plain message.
func PingCommand(prefix string) Conversation {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return ComposeBaseCommand(BaseCommandProps{
		Props:    Props{CommandContent: prefix + "ping"},
		Children: []Section{Body{Text: "Poong!"}},
	})
}

// PingCommandReplied answers a prefix command with a reply, pinging the
// author when ping is set.
func PingCommandReplied(prefix string, ping bool) Conversation {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return ComposeBaseCommand(BaseCommandProps{
		Props:   Props{CommandContent: prefix + "ping", Content: "Poong!"},
		Reply:   true,
		Mention: ping,
	})
}

// PingCommandSlash answers a slash command.
func PingCommandSlash(commandContent, content string, ephemeral bool) Conversation {
	return ComposeBaseCommand(BaseCommandProps{
		Props: Props{
			CommandContent: commandContent,
			Content:        content,
			Ephemeral:      ephemeral,
		},
		IsCommand: true,
	})
}
