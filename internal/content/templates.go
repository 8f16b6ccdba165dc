// internal/content/templates.go
package content

import "strings"

// RenderTemplate substitutes {placeholder} tokens in a template.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// Topic buckets for the fallback generator. Classification is a coarse
// substring match on the keyword; anything unmatched is "generic".
var topicKeywords = map[string][]string{
	"food":       {"coffee", "tea", "recipe", "food", "restaurant", "cooking", "kitchen", "baking", "meal", "cuisine"},
	"technology": {"software", "tech", "app", "ai", "computer", "code", "programming", "saas", "cloud", "data", "gadget"},
	"health":     {"health", "fitness", "yoga", "diet", "wellness", "exercise", "sleep", "nutrition", "mental"},
	"travel":     {"travel", "trip", "hotel", "flight", "vacation", "tour", "destination", "backpack"},
	"education":  {"learn", "course", "study", "school", "education", "training", "tutorial", "student"},
	"business":   {"business", "marketing", "seo", "startup", "sales", "finance", "invest", "ecommerce", "brand"},
}

// classification order is fixed so the same keyword always lands in the
// same bucket even when it matches more than one.
var topicOrder = []string{"food", "technology", "health", "travel", "education", "business"}

func classifyTopic(keyword string) string {
	kw := strings.ToLower(keyword)
	for _, topic := range topicOrder {
		for _, marker := range topicKeywords[topic] {
			if strings.Contains(kw, marker) {
				return topic
			}
		}
	}
	return "generic"
}

// Each template contains {anchor} exactly once, inside a plausible sentence,
// which is what guarantees the anchor-appears-once property on the fallback
// path.
var fallbackTemplates = map[string]string{
	"food": `## Why {keyword} Deserves More Attention

Few things shape our day quite like what we eat and drink, and {keyword} is a perfect example. Whether you are a casual enthusiast or someone who takes the craft seriously, understanding the details pays off every single time.

## Getting the Basics Right

Start with quality ingredients and a little patience. Small changes in preparation make an outsized difference in the result, and most of them cost nothing to try.

If you want to go deeper, {anchor} is a resource many enthusiasts recommend for practical, no-nonsense guidance.

## Final Thoughts

Like most things worth doing, {keyword} rewards consistency. Keep experimenting, keep notes, and enjoy the process as much as the result.`,

	"technology": `## Understanding {keyword}

Technology moves fast, and {keyword} is one of those areas where the fundamentals matter more than the hype. Teams that invest in understanding the basics ship better results with less churn.

## What Actually Matters

Focus on reliability, clear interfaces, and measurable outcomes. Tooling changes every year; the underlying principles do not.

For teams evaluating their options, {anchor} offers a useful starting point with concrete examples and comparisons.

## Looking Ahead

The landscape around {keyword} will keep shifting. Build on fundamentals and the shifts become opportunities instead of risks.`,

	"health": `## A Sensible Approach to {keyword}

Good health habits are built, not bought, and {keyword} is no exception. The most effective routines are the ones simple enough to repeat every week.

## Start Small, Stay Consistent

Pick one change you can sustain for a month before adding the next. Progress compounds quietly.

Many people find {anchor} helpful for structured, evidence-based advice on this exact topic.

## The Long View

Results from {keyword} show up over months, not days. Consistency beats intensity every time.`,

	"travel": `## Planning Around {keyword}

Great trips are made in the planning stage, and {keyword} is a topic every traveler runs into sooner or later. A little research before departure saves money, time, and stress on the ground.

## Practical Tips

Book flexible where you can, pack lighter than feels comfortable, and leave room in the itinerary for the unplanned.

Seasoned travelers often point newcomers to {anchor} for route ideas and honest, up-to-date recommendations.

## Before You Go

Whatever your style, {keyword} is easier with preparation. Do the homework once and enjoy the trip twice.`,

	"education": `## Learning {keyword} the Effective Way

Anyone can learn {keyword} with the right structure. The difference between fast and slow progress is rarely talent. It is usually the quality of the material and the regularity of practice.

## Building a Study Routine

Short, frequent sessions beat marathon cramming. Test yourself early and often, and revisit the basics even after they feel easy.

A good place to find structured material is {anchor}, which many learners use to organize their progress.

## Keep Momentum

Mastery of {keyword} is a long game. Celebrate small wins and keep the streak alive.`,

	"business": `## {keyword}: What Works in Practice

Every business eventually confronts {keyword}, and the companies that handle it well share a pattern: they measure before they act and iterate in small steps.

## Avoiding the Common Traps

Chasing trends burns budget. Focus on the channels and processes you can actually sustain, and cut what you cannot measure.

Operators looking for a pragmatic playbook often reference {anchor} when setting their strategy.

## Bottom Line

Treat {keyword} as an ongoing discipline rather than a one-time project and the results will follow.`,

	"generic": `## An Honest Look at {keyword}

There is more to {keyword} than first meets the eye. Most overviews either oversimplify or drown the reader in detail; the useful middle ground is knowing which few fundamentals carry the most weight.

## The Fundamentals

Understand the core concepts, apply them in small real-world experiments, and review what the results tell you. That loop works for {keyword} the same way it works everywhere else.

When you are ready for a deeper dive, {anchor} is a solid reference worth bookmarking.

## Wrapping Up

Approach {keyword} with curiosity and a bit of skepticism, and you will get further than most.`,
}

// fallbackBody renders the deterministic template for the request's topic.
func fallbackBody(req Request) string {
	topic := classifyTopic(req.Keyword)
	template := fallbackTemplates[topic]
	return RenderTemplate(template, map[string]string{
		"keyword": req.Keyword,
		"anchor":  anchorHTML(req.TargetURL, req.AnchorText),
	})
}
