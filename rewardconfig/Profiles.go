package rewardconfig

// Names of the built-in profiles
const (
	QuadrupedProfile = "Quadruped"
	WheeledProfile   = "Wheeled"
)

// Quadruped returns the legged reward profile. Every term in the
// catalog is active: the gait terms shape foot placement and stance
// while the tracking terms drive command following. Scales are tuned
// for the unit-interval convention, where every term lies in [0, 1]
// before weighting.
func Quadruped() Profile {
	return Profile{
		Name:          QuadrupedProfile,
		Convention:    UnitInterval,
		TrackingSigma: 0.25,
		Scales: RewardScales{
			"tracking_lin_vel":     1.5,
			"tracking_ang_vel":     0.8,
			"tracking_orientation": 1.0,

			"lin_vel_z":   -2.0,
			"ang_vel_xy":  -0.3,
			"orientation": -1.0,

			"torques":            -0.05,
			"joint_acceleration": -0.1,
			"mechanical_work":    -0.05,
			"action_rate":        -0.1,

			"feet_air_time":              0.3,
			"abduction_angle":            -0.5,
			"stand_still":                -0.5,
			"stand_still_joint_velocity": -0.1,
			"foot_slip":                  -0.5,

			"geom_collision": -1.0,
			"body_collision": -5.0,
			"knee_collision": -1.0,

			"termination": -200.0,
		},
	}
}

// Wheeled returns the wheeled reward profile. Precise velocity
// tracking and base stability dominate; every foot and gait specific
// term is pinned to 0 so a wheeled morphology never chases leg
// behaviors it does not have.
func Wheeled() Profile {
	return Profile{
		Name:          WheeledProfile,
		Convention:    UnitInterval,
		TrackingSigma: 0.25,
		Scales: RewardScales{
			// Primary tracking, raised for precise wheeled control
			"tracking_lin_vel": 2.5,
			"tracking_ang_vel": 1.5,

			// Stability: wheels should not bounce or tip
			"lin_vel_z":   -5.0,
			"ang_vel_xy":  -2.0,
			"orientation": -8.0,

			// Control smoothness and motor efficiency
			"action_rate": -0.05,
			"torques":     -0.001,

			"stand_still": -1.0,

			"body_collision": -10.0,
			"termination":    -200.0,

			// Walking-specific terms, disabled for wheels
			"tracking_orientation":       0,
			"joint_acceleration":         0,
			"mechanical_work":            0,
			"feet_air_time":              0,
			"stand_still_joint_velocity": 0,
			"abduction_angle":            0,
			"foot_slip":                  0,
			"knee_collision":             0,
		},
	}
}
