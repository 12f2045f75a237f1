package game

import (
	"fmt"
	"strings"
)

// Prompt builders for each phase. Kept together so the whole conversation a
// model sees can be reviewed in one place.

func citizenClueSystem(word string) string {
	return fmt.Sprintf(
		"ROLE: CITIZEN. Secret word='%s'. "+
			"TASK: Output EXACTLY ONE WORD. "+
			"Constraints: lowercase; no spaces/punctuation/emojis; NOT the secret word; avoid direct synonyms or rhymes of '%s'. "+
			"Goal: give a mid-specific associative clue, helpful to citizens but not so obvious that the impostor can safely copy it. "+
			"Do NOT explain.", word, word)
}

func citizenClueUser(previousClues string) string {
	if previousClues == "" {
		return "You give the first clue. Return ONLY the clue word."
	}
	return fmt.Sprintf("Clues given so far:\n%s\n\nReturn ONLY your clue word.", previousClues)
}

func impostorClueSystem(decoy string) string {
	base := "ROLE: IMPOSTOR (you do NOT know the secret word). " +
		"TASK: Output EXACTLY ONE WORD that plausibly fits the majority theme of the previous clues, to blend in. " +
		"Constraints: lowercase; no spaces/punctuation/emojis; avoid generic fillers (e.g. 'thing', 'object') and oddly specific giveaways. " +
		"Do NOT explain."
	if decoy != "" {
		base += fmt.Sprintf(" Hint: a related decoy word you were given is '%s'; the real word is something else.", decoy)
	}
	return base
}

func impostorClueUser(previousClues string) string {
	return fmt.Sprintf("Previous clues:\n%s\n\nReturn ONLY the word.", previousClues)
}

func discussionSystem(playerName string) string {
	return fmt.Sprintf(
		"Your name is %s. You are playing a social deduction word game. Every citizen knows a secret word "+
			"and gives subtle one-word clues; the clueless impostor bluffs from their hints to avoid detection. "+
			"STYLE: Be decisive. Keep it brief.", playerName)
}

func citizenDiscussionUser(context, word string) string {
	return fmt.Sprintf(
		"Context:\n%s\n\n"+
			"ROLE: you are a CITIZEN with word '%s'. GOAL: Find the impostor. "+
			"OUTPUT: TWO SHORT SENTENCES (at most 60 words total). "+
			"Discuss who you think the impostor is. Their clue is usually the one least connected to '%s' or the one that feels too generic and safe.",
		context, word, word)
}

func impostorDiscussionUser(context string) string {
	return fmt.Sprintf(
		"Context:\n%s\n\n"+
			"ROLE: you are the IMPOSTOR. GOAL: Deflect suspicion. "+
			"OUTPUT: TWO SHORT SENTENCES (at most 60 words total). "+
			"Deflect suspicion and steer the vote toward anybody but you. Be human-like.",
		context)
}

func votingSystem(playerName string, candidates []string) string {
	return fmt.Sprintf(
		"ROLE: %s. FINAL VOTE. "+
			"TASK: Output ONLY THE NAME of the player to eliminate. "+
			"Choose a name from: %s. You cannot vote for yourself. "+
			"No punctuation, no extra words.",
		playerName, strings.Join(candidates, ", "))
}

func citizenVotingUser(context, word string) string {
	return fmt.Sprintf(
		"All messages (order randomized):\n%s\n\n"+
			"ROLE: CITIZEN. You win if the impostor is eliminated. "+
			"Hint: the impostor saw the others' clues before giving theirs, so similarity alone is not guilt. "+
			"Focus on the clue least connected to '%s' or overly generic.\n\n"+
			"OUTPUT: ONLY the name.",
		context, word)
}

func impostorVotingUser(context string) string {
	return fmt.Sprintf(
		"All messages (order randomized):\n%s\n\n"+
			"ROLE: IMPOSTOR. You win if you SURVIVE. "+
			"Vote to push attention elsewhere; avoid reciprocal suspicion.\n\n"+
			"OUTPUT: ONLY the name.",
		context)
}
