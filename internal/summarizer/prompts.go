package summarizer

import "github.com/nguyentantai21042004/meeting-minutes/internal/models"

var instructions = map[models.Section]string{
	models.SectionAbstractSummary: "You are a highly skilled AI trained in language comprehension and summarization. " +
		"I would like you to read the following text and summarize it into a concise abstract paragraph. " +
		"Aim to retain the most important points, providing a coherent and readable summary that could help a person " +
		"understand the main points of the discussion without needing to read the entire text. " +
		"Please avoid unnecessary details or tangential points.",
	models.SectionKeyPoints: "You are a proficient AI with a specialty in distilling information into key points. " +
		"Based on the following text, identify and list the main points that were discussed or brought up. " +
		"These should be the most important ideas, findings, or topics that are crucial to the essence of the discussion. " +
		"Your goal is to provide a list that someone could read to quickly understand what was talked about.",
	models.SectionActionItems: "You are an AI expert in analyzing conversations and extracting action items. " +
		"Please review the text and identify any tasks, assignments, or actions that were agreed upon or mentioned as needing to be done. " +
		"These could be tasks assigned to specific individuals, or general actions that the group has decided to take. " +
		"Please list these action items clearly and concisely.",
	models.SectionSentiment: "As an AI with expertise in language and emotion analysis, your task is to analyze the sentiment of the following text. " +
		"Please consider the overall tone of the discussion, the emotion conveyed by the language used, and the context in which words and phrases are used. " +
		"Indicate whether the sentiment is generally positive, negative, or neutral, and provide brief explanations for your analysis where possible.",
}

// Instruction returns the fixed instruction for section
func Instruction(section models.Section) string {
	return instructions[section]
}

// BuildPrompt joins the instruction for section with the transcript
func BuildPrompt(section models.Section, transcript string) string {
	return Instruction(section) + "\n\nText to analyze:\n" + transcript
}
