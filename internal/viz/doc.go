// Package viz renders evolution tracks in the terminal.
//
//   - [Canvas]: braille dot canvas, 2×4 dots per cell
//   - [HRDiagram]: Hertzsprung–Russell plot of a track with a marker on the
//     current model
//   - [App]: Bubble Tea player driving a [player.Player]
//
// # Key Bindings
//
//	space  play/pause
//	←/→    step one model
//	↑/↓    change initial mass (recomputes the track)
//	0-9    seek to a tenth of the track
//	r      reset to the first model
//	e      export the track as JSON
//	t      cycle themes
//	?      full help
package viz
