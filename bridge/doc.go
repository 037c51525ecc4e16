/*
Package bridge connects to a bridge service that owns a full Steam client
session and relays Game Coordinator traffic over a websocket.

A Conn implements csgo.Transport and is wired to a client like this:

	cfg, err := bridge.FromEnv()
	// handle err
	conn, err := bridge.Dial(ctx, cfg)
	// handle err
	client := csgo.New(conn)
	conn.OnPacket(client.HandlePacket)
	conn.OnHostState(client.HandleHostState)
	go conn.Run(ctx)
*/
package bridge
