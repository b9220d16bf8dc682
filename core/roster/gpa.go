package roster

// GPAPolicy selects how a Student's aggregate GPA is derived from their
// per-course averages. Two policies are supported; both skip courses that
// have no grades yet and report "not available" when none has any.
type GPAPolicy string

const (
	// PolicyFourPointScale maps each course average onto the common U.S.
	// 4.0 grading scale before averaging:
	//   90-100 = 4.0, 80-89 = 3.0, 70-79 = 2.0, 60-69 = 1.0, <60 = 0.0
	PolicyFourPointScale GPAPolicy = "scale"

	// PolicyMeanOfAverages averages the raw course averages.
	PolicyMeanOfAverages GPAPolicy = "mean"
)

// ParseGPAPolicy maps a config value to a policy, defaulting to the 4.0 scale.
func ParseGPAPolicy(s string) GPAPolicy {
	if GPAPolicy(s) == PolicyMeanOfAverages {
		return PolicyMeanOfAverages
	}
	return PolicyFourPointScale
}

// GradePoint maps a course average onto the 4.0 scale.
func GradePoint(avg float64) float64 {
	switch {
	case avg >= 90:
		return 4.0
	case avg >= 80:
		return 3.0
	case avg >= 70:
		return 2.0
	case avg >= 60:
		return 1.0
	default:
		return 0.0
	}
}

// GPA computes the student's aggregate score under the given policy.
// ok is false when no enrolled course has any grades.
func (s *Student) GPA(policy GPAPolicy) (gpa float64, ok bool) {
	var sum float64
	var n int
	for _, crs := range s.Courses {
		avg, hasGrades := crs.Average()
		if !hasGrades {
			continue
		}
		if policy == PolicyMeanOfAverages {
			sum += avg
		} else {
			sum += GradePoint(avg)
		}
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
