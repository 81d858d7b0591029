package itinerary

import (
	"fmt"
	"strings"
)

// The worked example and the explicit formatting rules are load-bearing:
// models are unreliable at strict structural constraints (exact day count,
// minimum description length) without one.
const exampleItinerary = `{
  "destination": "Japan",
  "trip_duration": 2,
  "itinerary": [
    {
      "day": 1,
      "schedule": [
        {
          "location_name": "Tsukiji Outer Market",
          "description": "Start your day with a visit to the famous Tsukiji Outer Market. Try fresh sushi for breakfast at Sushi Dai, known for its excellent omakase."
        },
        {
          "location_name": "Ueno Park",
          "description": "Explore Ueno Park, home to several museums. Visit the Tokyo National Museum to learn about Japanese art and history."
        },
        {
          "location_name": "Ameyoko Shopping Street",
          "description": "Experience the lively atmosphere of Ameyoko. Have lunch at Okonomiyaki Sometaro, a local favorite for Japanese savory pancakes."
        },
        {
          "location_name": "Takeshita Street, Harajuku",
          "description": "Dive into Tokyo's youth culture on Takeshita Street. Shop for unique fashion items and try rainbow cotton candy."
        },
        {
          "location_name": "Shibuya Crossing",
          "description": "Experience the famous Shibuya Crossing and visit the Hachiko statue. End your day with dinner at Ichiran Ramen Shibuya for delicious tonkotsu ramen."
        }
      ]
    },
    {
      "day": 2,
      "schedule": [
        {
          "location_name": "Kiyomizu-dera Temple",
          "description": "Start your Kyoto journey at this UNESCO World Heritage site. Enjoy the panoramic views of Kyoto from the temple's wooden terrace."
        },
        {
          "location_name": "Ginkaku-ji (Silver Pavilion)",
          "description": "Explore this Zen temple known for its beautiful sand garden and moss garden. Take a stroll along the Philosopher's Path."
        },
        {
          "location_name": "Nanzenji Temple",
          "description": "Visit this important Zen temple complex. Don't miss the massive San-mon gate and the unique aqueduct on the temple grounds."
        },
        {
          "location_name": "Nishiki Market",
          "description": "Explore Kyoto's famous food market. Have a late lunch trying various local delicacies like tako tamago and Kyoto-style sushi at Nishiki Sushi."
        },
        {
          "location_name": "Pontocho Alley",
          "description": "End your day with a dinner at Izusen for traditional Kyoto cuisine (kaiseki) while enjoying the atmospheric narrow alley lined with traditional buildings."
        }
      ]
    }
  ]
}`

// buildPrompt renders the itinerary generation prompt: trip parameters, the
// worked example, exact formatting rules, and the community digest as
// grounding notes when present.
func buildPrompt(destination string, duration int, interests []string, digest string) string {
	joined := strings.Join(interests, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "Generate an engaging and highly-detailed itinerary for a trip to %s for %d days.\n", destination, duration)
	fmt.Fprintf(&b, "Focus on including a mix of activities that align with these specific interests: %s. Each day should include around 4 ~ 5 activities.\n", joined)
	fmt.Fprintf(&b, "Make sure activities are diverse (e.g., museums, hands-on experiences, unique dining spots) and appealing to someone passionate about %s.\n\n", joined)
	b.WriteString("For each activity, include:\n")
	b.WriteString("  - location_name: a specific, geocodable place for the activity, such as a store, landmark, restaurant, beach, or venue\n")
	fmt.Fprintf(&b, "  - description: a detailed description (at least %d characters) with specific recommendations\n\n", MinDescriptionLen)
	fmt.Fprintf(&b, "Ensure the itinerary contains exactly %d days, numbered sequentially from 1, and the activities do not overlap with one another.\n\n", duration)
	b.WriteString("Here is an example of the expected JSON format:\n\n")
	b.WriteString(exampleItinerary)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Return the result as a JSON object with exactly this structure, where \"destination\" is %q, \"trip_duration\" is %d, and \"itinerary\" holds one entry per day.\n", destination, duration)

	if digest != "" {
		b.WriteString("\nHere's some information you should keep in mind from other travelers for the itinerary generation:\n")
		b.WriteString(digest)
		b.WriteString("\n")
	}
	return b.String()
}
