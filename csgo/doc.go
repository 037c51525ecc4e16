/*
Package csgo implements a client for the CS:GO Game Coordinator.

The client rides on an existing Steam connection, provided to it as a
Transport. The bundled bridge package connects to a bridge service
speaking websockets, any other adapter works as long as it delivers
inbound traffic to HandlePacket and HandleHostState:

	conn, err := bridge.Dial(ctx, cfg)
	// handle err
	client := csgo.New(conn)
	conn.OnPacket(client.HandlePacket)
	conn.OnHostState(client.HandleHostState)

	err = client.Launch(ctx)
	// handle err
	_, err = client.WaitEvent(ctx, csgo.EventReady)

Once the ready event fired the GC answers requests and the shared object
cache in Client.SOCache carries the account's inventory.
*/
package csgo
