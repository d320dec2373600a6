// Package advice maps a severity bucket to a short guidance message.
package advice

import (
	"math/rand"
	"strings"

	"github.com/serenby/mindwell/internal/scales"
)

// pools are the fixed per-bucket message sets. Selection is random for
// variety; the content is static.
var pools = map[scales.Category][]string{
	scales.CategoryLow: {
		"Great job maintaining your mental health! Keep up your healthy habits.",
		"Your anxiety levels are well-managed. Continue your self-care routine!",
		"You're doing well! Consider sharing your strategies with others.",
	},
	scales.CategoryModerate: {
		"Try deep breathing exercises: inhale for 4 seconds, hold for 4, exhale for 4.",
		"Consider a short meditation session to help center yourself.",
		"A brief walk outside can help reduce stress and anxiety.",
		"Journaling your thoughts might help process your feelings.",
		"Ensure you're getting adequate sleep - it's crucial for mental health.",
	},
	scales.CategoryHigh: {
		"Your anxiety is elevated. Please consider reaching out to a professional.",
		"Speaking with a therapist can provide valuable coping strategies.",
		"Don't hesitate to call a mental health hotline if you need immediate support.",
		"If you're on medication, ensure you're taking it as prescribed.",
		"Reach out to a trusted friend or family member for support.",
	},
}

// ProfessionalHelpNotice is appended to every high-bucket message.
const ProfessionalHelpNotice = `Important notice: your reported anxiety level is high. We strongly recommend booking an appointment with a mental health professional.

If you're in crisis, please contact:
- National Suicide Prevention Lifeline: 988 (US)
- Crisis Text Line: text HOME to 741741
- International Association for Suicide Prevention: https://www.iasp.info/resources/Crisis_Centres/

Seeking help is a sign of strength, not weakness.`

const neutralDefault = "Take a moment to check in with yourself and do something kind for your mind today."

// ForCategory returns one message from the bucket's pool, with the
// professional-help notice appended for the high bucket.
func ForCategory(cat scales.Category) string {
	pool := pools[cat]
	if len(pool) == 0 {
		return neutralDefault
	}
	msg := pool[rand.Intn(len(pool))]
	if cat == scales.CategoryHigh {
		msg = msg + "\n\n" + ProfessionalHelpNotice
	}
	return msg
}

// ForLevel buckets a 1-10 severity and returns advice for it.
func ForLevel(severity int) string {
	return ForCategory(scales.CategoryFor(severity))
}

// IsEscalated reports whether text carries the professional-help notice.
func IsEscalated(text string) bool {
	return strings.Contains(text, "988")
}
