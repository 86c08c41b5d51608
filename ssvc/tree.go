package ssvc

// DecideAction walks the fixed SSVC policy tree. It is total over the
// 3x2x2x3 input space and deterministic; the tree is not configurable.
func DecideAction(exploitation ExploitationLevel, automatable Automatable, techImpact TechnicalImpact, missionImpact MissionImpact) Action {
	switch exploitation {
	case ExploitationActive:
		if automatable == AutomatableYes {
			return ActionAct
		}
		if techImpact == TechnicalImpactPartial {
			return ActionAttend
		}
		if missionImpact == MissionImpactLow {
			return ActionAttend
		}
		return ActionAct

	case ExploitationPoC:
		if automatable == AutomatableYes {
			if techImpact == TechnicalImpactPartial {
				return ActionTrackStar
			}
			if missionImpact == MissionImpactLow {
				return ActionTrackStar
			}
			return ActionAttend
		}
		if techImpact == TechnicalImpactPartial {
			return ActionTrackStar
		}
		// Total impact without automation only warrants Attend when the
		// mission tier is High.
		if missionImpact == MissionImpactHigh {
			return ActionAttend
		}
		return ActionTrackStar

	default: // ExploitationNone
		if techImpact == TechnicalImpactPartial {
			return ActionTrack
		}
		if missionImpact != MissionImpactHigh {
			return ActionTrack
		}
		if automatable == AutomatableYes {
			return ActionAttend
		}
		return ActionTrackStar
	}
}
