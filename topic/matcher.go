package topic

import "strings"

func matchTopicFilter(filter, topic string) bool {
	if filter == topic {
		return true
	}

	filterLevels := splitTopicLevels(filter)
	topicLevels := splitTopicLevels(topic)

	// MQTT-4.7.2-1: a filter whose first level is '#' or '+' must not match a topic whose
	// first level starts with '$'. Only the first level matters; "$SYS/#" must still match
	// "$SYS/x" (https://docs.oasis-open.org/mqtt/mqtt/v3.1.1 section 4.7.2).
	if len(topicLevels) > 0 && strings.HasPrefix(topicLevels[0], "$") &&
		len(filterLevels) > 0 && (filterLevels[0] == "#" || filterLevels[0] == "+") {
		return false
	}

	return matchLevels(filterLevels, topicLevels)
}

func matchLevels(filterLevels, topicLevels []string) bool {
	filterLen := len(filterLevels)
	topicLen := len(topicLevels)

	fi := 0
	ti := 0

	for fi < filterLen && ti < topicLen {
		filterLevel := filterLevels[fi]
		topicLevel := topicLevels[ti]

		if filterLevel == "#" {
			return true
		}

		if filterLevel == "+" {
			fi++
			ti++
			continue
		}

		if filterLevel != topicLevel {
			return false
		}

		fi++
		ti++
	}

	if fi < filterLen {
		return filterLen-fi == 1 && filterLevels[fi] == "#"
	}

	return ti == topicLen
}
