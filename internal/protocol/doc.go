// Package protocol models the messages exchanged between the debug server and
// a waveform/debugger client.
//
// Every message is a JSON object with a "type" discriminator. Commands carry
// a second discriminator, "command", which responses echo; events carry
// "event". Decoding inspects the discriminators once, up front, and then
// decodes the body into exactly one concrete shape:
//
//	greeting                      GreetingRequest / GreetingResponse
//	command  list_scopes          ListScopes            -> ListScopesResponse
//	command  list_items           ListItems             -> ListItemsResponse
//	command  get_simulation_status GetSimulationStatus  -> GetSimulationStatusResponse
//	command  run_simulation       RunSimulation         -> RunSimulationResponse
//	command  pause_simulation     PauseSimulation       -> PauseSimulationResponse
//	command  reference_items      ReferenceItems        -> ReferenceItemsResponse
//	command  query_interval       QueryInterval         -> QueryIntervalResponse
//	event    simulation_paused    SimulationPaused
//	event    simulation_finished  SimulationFinished
//	error                         Error
//
// Framing of encoded messages on a byte stream lives in package wire.
package protocol
